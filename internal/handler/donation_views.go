package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/repository"
)

// ViewHandler serves the read-only role-specific listing views.  None of
// these endpoints mutate state: an expired or stale donation is filtered or
// shown as-is, never rewritten by a read.
type ViewHandler struct {
	Donations *repository.DonationRepo
}

// NewViewHandler constructs a ViewHandler; the repository must be non-nil.
func NewViewHandler(donations *repository.DonationRepo) *ViewHandler {
	if donations == nil {
		panic("nil repository passed to NewViewHandler")
	}
	return &ViewHandler{Donations: donations}
}

// DonorRequests handles GET /v1/donations/requests/donor: the donor's
// donations that carry an active NGO claim, with requester and volunteer
// details attached.
func (h *ViewHandler) DonorRequests(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Donations.ListDonorRequests(ctx, actor.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// NgoRequests handles GET /v1/donations/requests/ngo: every donation the
// NGO has requested, with donor and volunteer details attached.
func (h *ViewHandler) NgoRequests(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Donations.ListByRequester(ctx, actor.ID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// VolunteerTasks handles GET /v1/donations/tasks/volunteer: donations in a
// delivery-relevant state with a volunteer assigned, with pickup (donor)
// and drop-off (NGO) details attached.
func (h *ViewHandler) VolunteerTasks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Donations.ListVolunteerTasks(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}
