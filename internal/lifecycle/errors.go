// Package lifecycle implements the donation status state machine: the valid
// states, the events that move a donation between them, the role and
// ownership guards on every event, and the expiry-time rule applied at
// creation.  The package is pure – it inspects a donation snapshot and an
// acting user and describes the mutation to perform; persistence and the
// conditional write that makes transitions atomic live in the repository
// layer.
package lifecycle

import "errors"

// ErrNotAuthenticated is returned when no acting user is supplied.
// Handlers translate it into an HTTP 401 response.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrWrongRole is returned when the actor's role may never trigger the
// event, regardless of which donation is targeted.  Maps to HTTP 403.
var ErrWrongRole = errors.New("wrong role")

// ErrNotOwner is returned when the event is reserved for a specific
// stakeholder of the donation (its donor, or the NGO that requested it)
// and the actor is somebody else.  Maps to HTTP 403.
var ErrNotOwner = errors.New("not the owning stakeholder")

// ErrOwnDonation is returned when a donor attempts to request their own
// donation.  Maps to HTTP 403.
var ErrOwnDonation = errors.New("cannot request own donation")

// ErrInvalidTransition is returned when the donation's current status does
// not admit the event.  The guards are evaluated only after the
// authorization checks pass, so an unauthorized caller never learns the
// donation's state.  Maps to HTTP 409.
var ErrInvalidTransition = errors.New("status does not admit transition")

// ErrInvalidEvent is returned for unrecognized respond actions or advance
// targets.  The donation is left untouched.  Maps to HTTP 400.
var ErrInvalidEvent = errors.New("unknown lifecycle event")
