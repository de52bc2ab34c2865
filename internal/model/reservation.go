package model

// Status is the lifecycle state of a reservation. The domain is
// closed: exactly three values exist and every newly created
// reservation starts at StatusPending. The application writes any
// recognized value regardless of the current one; there is no
// transition table.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a raw status label against the closed
// domain. It returns the typed value and true when the label is one
// of the three recognized states, and false otherwise.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(raw), true
	}
	return "", false
}

// Reservation records a booking request for one or more tables at a
// given date and time. Dates and times are carried as strings
// ("2006-01-02" and "15:04:05") so that day-granularity comparisons
// never depend on time zone conversions.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the reservation.
//  PartySize – number of people in the party.
//  Date      – calendar date of the booking.
//  Time      – time of day of the booking.
//  Status    – lifecycle state (pending, confirmed, cancelled).
//  Note      – optional free-text note (nullable).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64  // reservations.id
	UserID    uint64  // reservations.userId
	PartySize uint32  // reservations.numberOfPeople
	Date      string  // reservations.date
	Time      string  // reservations.time
	Status    Status  // reservations.status
	Note      *string // reservations.note (nullable)
	CreatedAt string  // reservations.createdAt
	UpdatedAt string  // reservations.updatedAt
}

// ReservationTable links a reservation to a single table. Together
// the rows for one reservation form the full set of tables occupied
// by the booking. Rows are written exactly once, in the same
// transaction as the parent reservation, and never mutated.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reference to the reservation.
//  TableID       – table assigned to the reservation.
//  CreatedAt     – creation timestamp.
type ReservationTable struct {
	ID            uint64 // reservationtables.id
	ReservationID uint64 // reservationtables.reservationId
	TableID       uint64 // reservationtables.tableId
	CreatedAt     string // reservationtables.createdAt
}
