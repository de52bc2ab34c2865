// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the reservation.events queue.
const (
	KindReservationCreated = "reservation.created"
	KindStatusChanged      = "reservation.status_changed"
)

// ReservationEvent is published after a reservation is created or an
// administrator changes its status. It contains enough information
// for downstream consumers to log or trigger analytics without
// querying the primary database. Publishing is best-effort: the
// request that produced the event never fails because of it.
type ReservationEvent struct {
	Kind          string   `json:"kind"`
	ReservationID uint64   `json:"reservation_id"`
	UserID        uint64   `json:"user_id,omitempty"`
	PartySize     uint32   `json:"party_size,omitempty"`
	Date          string   `json:"date,omitempty"`
	Time          string   `json:"time,omitempty"`
	TableIDs      []uint64 `json:"table_ids,omitempty"`
	Status        string   `json:"status"`
	OccurredAt    string   `json:"occurred_at"`
}
