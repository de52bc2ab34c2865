package model

// Table describes a physical seating unit in the dining room.
// Tables are static reference data seeded at initialization and
// read-only from the reservation workflow's perspective.
//
// Fields:
//  ID          – primary key identifier.
//  Number      – human-readable table number (unique, e.g. "T3").
//  Seats       – seat capacity of the table.
//  IsAvailable – whether the table is offered for booking.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Table struct {
	ID          uint64 // tables.id
	Number      string // tables.number
	Seats       uint32 // tables.seats
	IsAvailable bool   // tables.isAvailable
	CreatedAt   string // tables.createdAt
	UpdatedAt   string // tables.updatedAt
}
