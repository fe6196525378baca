package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/lifecycle"
	"github.com/mealbridge/food-donation-platform/internal/model"
	"github.com/mealbridge/food-donation-platform/internal/queue"
	"github.com/mealbridge/food-donation-platform/internal/repository"
	queue_publisher "github.com/mealbridge/food-donation-platform/internal/service"
)

// LifecycleHandler serves the four mutation endpoints of the donation
// lifecycle.  Every handler follows the same shape: resolve the actor, load
// the donation, let the lifecycle core decide, then persist the change as a
// conditional update.  The core's decision order guarantees that an
// unauthorized caller learns nothing about the donation's state — or even
// whether the submitted action value exists.
type LifecycleHandler struct {
	Donations *repository.DonationRepo
}

// NewLifecycleHandler constructs a LifecycleHandler; the repository must be
// non-nil.
func NewLifecycleHandler(donations *repository.DonationRepo) *LifecycleHandler {
	if donations == nil {
		panic("nil repository passed to NewLifecycleHandler")
	}
	return &LifecycleHandler{Donations: donations}
}

// decision produces the change to persist once the actor and the current
// donation snapshot are known.  Respond and Advance defer their action
// parsing into the decision so that authorization is always checked first.
type decision func(lifecycle.Actor, *model.Donation) (lifecycle.Change, lifecycle.Event, error)

func fixedEvent(ev lifecycle.Event) decision {
	return func(a lifecycle.Actor, d *model.Donation) (lifecycle.Change, lifecycle.Event, error) {
		ch, err := lifecycle.Decide(a, d, ev)
		return ch, ev, err
	}
}

// transition runs the shared resolve-load-decide-apply sequence.  The
// conditional write in ApplyChange re-checks the status the decision was
// made against, so a concurrent transition that lands first turns this call
// into a 409 instead of a silent overwrite.
func (h *LifecycleHandler) transition(c echo.Context, decide decision) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid donation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		return writeDomainError(c, err)
	}

	ch, ev, err := decide(actor, &d)
	if err != nil {
		return writeDomainError(c, err)
	}

	updated, err := h.Donations.ApplyChange(ctx, id, ch)
	if err != nil {
		return writeDomainError(c, err)
	}

	publishTransition(actor, &updated, ev)
	return c.JSON(http.StatusOK, toDonationResp(updated))
}

// Request handles PUT /v1/donations/:id/request: an NGO claims an
// available donation.
func (h *LifecycleHandler) Request(c echo.Context) error {
	return h.transition(c, fixedEvent(lifecycle.EventRequest))
}

// Respond handles PUT /v1/donations/:id/respond with body
// {"action": "accept"|"reject"}: the donor answers a pending claim.  The
// action value is only interpreted after the ownership check passes; a
// non-owner is refused identically for valid and invalid actions.
func (h *LifecycleHandler) Respond(c echo.Context) error {
	var body struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	return h.transition(c, func(a lifecycle.Actor, d *model.Donation) (lifecycle.Change, lifecycle.Event, error) {
		return lifecycle.DecideRespond(a, d, body.Action)
	})
}

// Cancel handles PUT /v1/donations/:id/cancel: the requesting NGO
// withdraws its claim and the donation is re-listed.
func (h *LifecycleHandler) Cancel(c echo.Context) error {
	return h.transition(c, fixedEvent(lifecycle.EventCancel))
}

// Advance handles PUT /v1/donations/:id/status with body
// {"status": "PickedUp"|"Delivered"}: a volunteer moves the delivery
// forward.  Any other value is invalid input and leaves the row untouched.
func (h *LifecycleHandler) Advance(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	return h.transition(c, func(a lifecycle.Actor, d *model.Donation) (lifecycle.Change, lifecycle.Event, error) {
		return lifecycle.DecideAdvance(a, d, body.Status)
	})
}

func eventKind(ev lifecycle.Event) string {
	switch ev {
	case lifecycle.EventRequest:
		return queue.KindRequested
	case lifecycle.EventAccept:
		return queue.KindAccepted
	case lifecycle.EventReject:
		return queue.KindRejected
	case lifecycle.EventCancel:
		return queue.KindCancelled
	case lifecycle.EventPickUp:
		return queue.KindPickedUp
	case lifecycle.EventDeliver:
		return queue.KindDelivered
	}
	return string(ev)
}

// publishTransition emits the lifecycle event best-effort in the
// background.  A broker outage never fails the caller's request; the
// publisher logs its own errors.
func publishTransition(actor lifecycle.Actor, d *model.Donation, ev lifecycle.Event) {
	event := queue.DonationLifecycleEvent{
		EventID:    uuid.NewString(),
		Kind:       eventKind(ev),
		DonationID: d.ID,
		Title:      d.Title,
		DonorID:    d.DonorID,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Status:     d.Status,
		NgoID:      d.RequestedBy,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishLifecycle(ctx, event)
	}()
}
