package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/mealbridge/food-donation-platform/internal/model"
)

const (
	donorID     = uint64(1)
	ngoID       = uint64(2)
	volunteerID = uint64(3)
	otherNgoID  = uint64(4)
)

func availableDonation() *model.Donation {
	prep := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &model.Donation{
		ID:                 10,
		DonorID:            donorID,
		Title:              "Rice & Sambar",
		FoodType:           FoodVeg,
		Category:           CategoryCooked,
		StorageInstruction: StorageKeepHot,
		PreparationTime:    prep,
		ExpiryTime:         ComputeExpiry(CategoryCooked, FoodVeg, StorageKeepHot, prep),
		Status:             StatusAvailable,
	}
}

func donationIn(status string, requestedBy *uint64) *model.Donation {
	d := availableDonation()
	d.Status = status
	d.RequestedBy = requestedBy
	return d
}

func TestRequestTransition(t *testing.T) {
	d := availableDonation()
	ch, err := Decide(Actor{ID: ngoID, Role: RoleNGO}, d, EventRequest)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if ch.From != StatusAvailable || ch.To != StatusPending {
		t.Fatalf("unexpected change %+v", ch)
	}
	Apply(d, ch)
	if d.Status != StatusPending || d.RequestedBy == nil || *d.RequestedBy != ngoID {
		t.Fatalf("donation not claimed: %+v", d)
	}
}

func TestRequestAlreadyClaimedConflicts(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusPending, &ngo)
	_, err := Decide(Actor{ID: otherNgoID, Role: RoleNGO}, d, EventRequest)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestRequestGuards(t *testing.T) {
	d := availableDonation()

	if _, err := Decide(Actor{}, d, EventRequest); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("anonymous: want ErrNotAuthenticated, got %v", err)
	}
	if _, err := Decide(Actor{ID: volunteerID, Role: RoleVolunteer}, d, EventRequest); !errors.Is(err, ErrWrongRole) {
		t.Fatalf("volunteer: want ErrWrongRole, got %v", err)
	}
	// A donor holding an ngo token for their own donation is still refused.
	if _, err := Decide(Actor{ID: donorID, Role: RoleNGO}, d, EventRequest); !errors.Is(err, ErrOwnDonation) {
		t.Fatalf("self request: want ErrOwnDonation, got %v", err)
	}
}

func TestRespondReject(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusPending, &ngo)
	ev, err := RespondEvent("reject")
	if err != nil {
		t.Fatalf("reject action: %v", err)
	}
	ch, err := Decide(Actor{ID: donorID, Role: RoleDonor}, d, ev)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	Apply(d, ch)
	if d.Status != StatusAvailable || d.RequestedBy != nil {
		t.Fatalf("reject did not reset donation: %+v", d)
	}
}

func TestRespondByStrangerForbiddenRegardlessOfState(t *testing.T) {
	for _, status := range []string{StatusAvailable, StatusPending, StatusAccepted, StatusDelivered} {
		ngo := ngoID
		d := donationIn(status, &ngo)
		_, err := Decide(Actor{ID: otherNgoID, Role: RoleDonor}, d, EventAccept)
		if !errors.Is(err, ErrNotOwner) {
			t.Fatalf("status %s: want ErrNotOwner, got %v", status, err)
		}
	}
}

func TestRespondUnknownActionInvalid(t *testing.T) {
	if _, err := RespondEvent("approve"); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("want ErrInvalidEvent, got %v", err)
	}
	if _, err := RespondEvent(""); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("want ErrInvalidEvent for empty action, got %v", err)
	}
}

func TestRespondGarbageActionRefusedByOwnershipFirst(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusPending, &ngo)

	// A stranger submitting a nonsense action must be told "not yours",
	// never "unknown action" — the action value is only inspected for the
	// rightful donor.
	if _, _, err := DecideRespond(Actor{ID: otherNgoID, Role: RoleDonor}, d, "destroy"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger with garbage action: want ErrNotOwner, got %v", err)
	}
	if _, _, err := DecideRespond(Actor{ID: ngoID, Role: RoleNGO}, d, "destroy"); !errors.Is(err, ErrWrongRole) {
		t.Fatalf("wrong role with garbage action: want ErrWrongRole, got %v", err)
	}
	if _, _, err := DecideRespond(Actor{}, d, "destroy"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("anonymous with garbage action: want ErrNotAuthenticated, got %v", err)
	}
	if _, _, err := DecideRespond(Actor{ID: donorID, Role: RoleDonor}, d, "destroy"); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("owner with garbage action: want ErrInvalidEvent, got %v", err)
	}

	ch, ev, err := DecideRespond(Actor{ID: donorID, Role: RoleDonor}, d, "accept")
	if err != nil || ev != EventAccept || ch.To != StatusAccepted {
		t.Fatalf("owner accept: ch=%+v ev=%s err=%v", ch, ev, err)
	}
}

func TestAdvanceGarbageTargetCheckedAfterRole(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusAccepted, &ngo)

	if _, _, err := DecideAdvance(Actor{ID: ngoID, Role: RoleNGO}, d, "bogus"); !errors.Is(err, ErrWrongRole) {
		t.Fatalf("wrong role with garbage target: want ErrWrongRole, got %v", err)
	}
	if _, _, err := DecideAdvance(Actor{ID: volunteerID, Role: RoleVolunteer}, d, "bogus"); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("volunteer with garbage target: want ErrInvalidEvent, got %v", err)
	}

	ch, ev, err := DecideAdvance(Actor{ID: volunteerID, Role: RoleVolunteer}, d, StatusPickedUp)
	if err != nil || ev != EventPickUp || ch.To != StatusPickedUp {
		t.Fatalf("volunteer pickup: ch=%+v ev=%s err=%v", ch, ev, err)
	}
}

func TestCancelResetsClaim(t *testing.T) {
	ngo := ngoID
	vol := volunteerID
	d := donationIn(StatusAccepted, &ngo)
	d.AssignedVolunteer = &vol

	ch, err := Decide(Actor{ID: ngoID, Role: RoleNGO}, d, EventCancel)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	Apply(d, ch)
	if d.Status != StatusAvailable || d.RequestedBy != nil || d.AssignedVolunteer != nil {
		t.Fatalf("cancel did not reset donation: %+v", d)
	}
}

func TestCancelByOtherNgoForbidden(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusPending, &ngo)
	if _, err := Decide(Actor{ID: otherNgoID, Role: RoleNGO}, d, EventCancel); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
}

func TestCancelAfterPickupConflicts(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusPickedUp, &ngo)
	if _, err := Decide(Actor{ID: ngoID, Role: RoleNGO}, d, EventCancel); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestAdvanceMustPassThroughPickedUp(t *testing.T) {
	ngo := ngoID
	d := donationIn(StatusAccepted, &ngo)
	ev, err := AdvanceEvent(StatusDelivered)
	if err != nil {
		t.Fatalf("advance action: %v", err)
	}
	if _, err := Decide(Actor{ID: volunteerID, Role: RoleVolunteer}, d, ev); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered before pickup: want ErrInvalidTransition, got %v", err)
	}
}

func TestAdvanceUnknownTargetInvalid(t *testing.T) {
	for _, next := range []string{"Cancelled", "Available", "done", ""} {
		if _, err := AdvanceEvent(next); !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("target %q: want ErrInvalidEvent, got %v", next, err)
		}
	}
}

func TestAuthorizationCheckedBeforeState(t *testing.T) {
	// A wrong-role caller on a donation that would also fail the state guard
	// must see the authorization error, not the state conflict.
	ngo := ngoID
	d := donationIn(StatusDelivered, &ngo)
	if _, err := Decide(Actor{ID: donorID, Role: RoleDonor}, d, EventRequest); !errors.Is(err, ErrWrongRole) {
		t.Fatalf("want ErrWrongRole, got %v", err)
	}
	if _, err := Decide(Actor{ID: otherNgoID, Role: RoleDonor}, d, EventAccept); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
}

func TestFullLifecycleWalk(t *testing.T) {
	prep := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d := availableDonation()
	d.PreparationTime = prep
	d.ExpiryTime = ComputeExpiry(CategoryCooked, FoodVeg, StorageKeepHot, prep)

	if want := prep.Add(5 * time.Hour); !d.ExpiryTime.Equal(want) {
		t.Fatalf("expiry: got %v, want %v", d.ExpiryTime, want)
	}

	steps := []struct {
		actor Actor
		ev    Event
		want  string
	}{
		{Actor{ID: ngoID, Role: RoleNGO}, EventRequest, StatusPending},
		{Actor{ID: donorID, Role: RoleDonor}, EventAccept, StatusAccepted},
		{Actor{ID: volunteerID, Role: RoleVolunteer}, EventPickUp, StatusPickedUp},
		{Actor{ID: volunteerID, Role: RoleVolunteer}, EventDeliver, StatusDelivered},
	}
	for _, s := range steps {
		ch, err := Decide(s.actor, d, s.ev)
		if err != nil {
			t.Fatalf("step %s: %v", s.ev, err)
		}
		if ch.From != d.Status {
			t.Fatalf("step %s: change expects %s but donation is %s", s.ev, ch.From, d.Status)
		}
		Apply(d, ch)
		if d.Status != s.want {
			t.Fatalf("step %s: status %s, want %s", s.ev, d.Status, s.want)
		}
	}

	if *d.RequestedBy != ngoID {
		t.Fatalf("requested_by lost during walk: %+v", d.RequestedBy)
	}
	if !IsTerminal(d.Status) {
		t.Fatalf("delivered should be terminal")
	}

	// Terminal state admits nothing, from anybody.
	for _, ev := range []Event{EventRequest, EventAccept, EventReject, EventCancel, EventPickUp, EventDeliver} {
		for _, a := range []Actor{
			{ID: ngoID, Role: RoleNGO},
			{ID: donorID, Role: RoleDonor},
			{ID: volunteerID, Role: RoleVolunteer},
		} {
			if _, err := Decide(a, d, ev); err == nil {
				t.Fatalf("terminal donation accepted event %s from %s", ev, a.Role)
			}
		}
	}
}

func TestIsExpiredDerivedPredicate(t *testing.T) {
	d := availableDonation()
	before := d.ExpiryTime.Add(-time.Minute)
	after := d.ExpiryTime.Add(time.Minute)
	if IsExpired(d, before) {
		t.Fatalf("donation expired too early")
	}
	if !IsExpired(d, d.ExpiryTime) {
		t.Fatalf("donation at expiry instant should count as expired")
	}
	if !IsExpired(d, after) {
		t.Fatalf("donation past expiry not expired")
	}
	// Expiry never rewrites the stored status.
	if d.Status != StatusAvailable {
		t.Fatalf("IsExpired mutated status to %s", d.Status)
	}
}
