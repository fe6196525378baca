package lifecycle

import "github.com/mealbridge/food-donation-platform/internal/model"

// Event names the lifecycle transitions a caller can attempt.
type Event string

const (
	EventRequest Event = "request" // NGO claims an available donation
	EventAccept  Event = "accept"  // donor approves the pending claim
	EventReject  Event = "reject"  // donor declines, donation re-listed
	EventCancel  Event = "cancel"  // requesting NGO withdraws its claim
	EventPickUp  Event = "pickup"  // volunteer collected the food
	EventDeliver Event = "deliver" // volunteer completed the delivery
)

// Change describes the mutation a successful decision produces.  From is
// the status the donation must still hold when the write lands; the
// repository applies the change with a conditional UPDATE on that status so
// that two concurrent claims can never both succeed.
type Change struct {
	From             string  // expected current status (compare-and-set guard)
	To               string  // new status
	SetRequestedBy   *uint64 // set requested_by to this user when non-nil
	ClearRequestedBy bool    // null out requested_by
	ClearVolunteer   bool    // null out assigned_volunteer
}

// RespondEvent maps a donor respond action string to its event.  Unknown
// actions are invalid input, not a silent status write.
func RespondEvent(action string) (Event, error) {
	switch action {
	case "accept":
		return EventAccept, nil
	case "reject":
		return EventReject, nil
	}
	return "", ErrInvalidEvent
}

// AdvanceEvent maps a volunteer status target to its event.  Only the two
// documented targets exist; anything else is invalid input.
func AdvanceEvent(next string) (Event, error) {
	switch next {
	case StatusPickedUp:
		return EventPickUp, nil
	case StatusDelivered:
		return EventDeliver, nil
	}
	return "", ErrInvalidEvent
}

// DecideRespond evaluates a donor's answer to a pending claim.  The
// authorization guards run before the action string is even inspected: a
// caller who may not respond gets the same refusal whether the action is
// valid, unknown, or empty, so probing with garbage actions reveals nothing.
func DecideRespond(actor Actor, d *model.Donation, action string) (Change, Event, error) {
	if actor.ID == 0 {
		return Change{}, "", ErrNotAuthenticated
	}
	if actor.Role != RoleDonor {
		return Change{}, "", ErrWrongRole
	}
	if actor.ID != d.DonorID {
		return Change{}, "", ErrNotOwner
	}
	ev, err := RespondEvent(action)
	if err != nil {
		return Change{}, "", err
	}
	ch, err := Decide(actor, d, ev)
	return ch, ev, err
}

// DecideAdvance evaluates a volunteer's delivery progress update, with the
// same guard ordering as DecideRespond: role before target validation
// before state.
func DecideAdvance(actor Actor, d *model.Donation, next string) (Change, Event, error) {
	if actor.ID == 0 {
		return Change{}, "", ErrNotAuthenticated
	}
	if actor.Role != RoleVolunteer {
		return Change{}, "", ErrWrongRole
	}
	ev, err := AdvanceEvent(next)
	if err != nil {
		return Change{}, "", err
	}
	ch, err := Decide(actor, d, ev)
	return ch, ev, err
}

// Decide evaluates whether actor may apply ev to the donation snapshot d
// and, if so, returns the change to persist.  Guards run in a fixed order:
// authentication, then role, then stakeholder ownership, and only then the
// status precondition.  Ordering matters – an unauthorized caller gets the
// same authorization error whatever state the donation is in, so state
// information never leaks to callers who may not act on it.
func Decide(actor Actor, d *model.Donation, ev Event) (Change, error) {
	if actor.ID == 0 {
		return Change{}, ErrNotAuthenticated
	}

	switch ev {
	case EventRequest:
		if actor.Role != RoleNGO {
			return Change{}, ErrWrongRole
		}
		if actor.ID == d.DonorID {
			return Change{}, ErrOwnDonation
		}
		if d.Status != StatusAvailable {
			return Change{}, ErrInvalidTransition
		}
		requester := actor.ID
		return Change{From: StatusAvailable, To: StatusPending, SetRequestedBy: &requester}, nil

	case EventAccept, EventReject:
		if actor.Role != RoleDonor {
			return Change{}, ErrWrongRole
		}
		if actor.ID != d.DonorID {
			return Change{}, ErrNotOwner
		}
		if d.Status != StatusPending {
			return Change{}, ErrInvalidTransition
		}
		if ev == EventAccept {
			return Change{From: StatusPending, To: StatusAccepted}, nil
		}
		return Change{From: StatusPending, To: StatusAvailable, ClearRequestedBy: true}, nil

	case EventCancel:
		if actor.Role != RoleNGO {
			return Change{}, ErrWrongRole
		}
		if d.RequestedBy == nil || *d.RequestedBy != actor.ID {
			return Change{}, ErrNotOwner
		}
		if d.Status != StatusPending && d.Status != StatusAccepted {
			return Change{}, ErrInvalidTransition
		}
		return Change{From: d.Status, To: StatusAvailable, ClearRequestedBy: true, ClearVolunteer: true}, nil

	case EventPickUp:
		if actor.Role != RoleVolunteer {
			return Change{}, ErrWrongRole
		}
		if d.Status != StatusAccepted {
			return Change{}, ErrInvalidTransition
		}
		return Change{From: StatusAccepted, To: StatusPickedUp}, nil

	case EventDeliver:
		if actor.Role != RoleVolunteer {
			return Change{}, ErrWrongRole
		}
		if d.Status != StatusPickedUp {
			return Change{}, ErrInvalidTransition
		}
		return Change{From: StatusPickedUp, To: StatusDelivered}, nil
	}

	return Change{}, ErrInvalidEvent
}

// Apply mutates a donation snapshot with a change.  The repository performs
// the real conditional write; this helper keeps in-memory copies (and the
// tests) consistent with what the database would hold afterwards.
func Apply(d *model.Donation, ch Change) {
	d.Status = ch.To
	if ch.SetRequestedBy != nil {
		v := *ch.SetRequestedBy
		d.RequestedBy = &v
	}
	if ch.ClearRequestedBy {
		d.RequestedBy = nil
	}
	if ch.ClearVolunteer {
		d.AssignedVolunteer = nil
	}
}
