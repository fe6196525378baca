// Package queue defines message payloads exchanged over the message broker.
package queue

// Lifecycle event kinds, one per successful transition.
const (
	KindRequested = "requested"
	KindAccepted  = "accepted"
	KindRejected  = "rejected"
	KindCancelled = "cancelled"
	KindPickedUp  = "picked_up"
	KindDelivered = "delivered"
)

// DonationLifecycleEvent is published after a donation transition commits.
// It carries enough for downstream consumers (notification senders, audit
// logs, analytics) to act without querying the primary database.
type DonationLifecycleEvent struct {
	EventID    string  `json:"event_id"` // uuid, for consumer-side dedup
	Kind       string  `json:"kind"`
	DonationID uint64  `json:"donation_id"`
	Title      string  `json:"title"`
	DonorID    uint64  `json:"donor_id"`
	ActorID    uint64  `json:"actor_id"`
	ActorRole  string  `json:"actor_role"`
	Status     string  `json:"status"`
	NgoID      *uint64 `json:"ngo_id,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
