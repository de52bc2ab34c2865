package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and
// their table associations. A reservation groups one or more tables
// for a date and time; the tables assigned to it are stored in the
// reservationtables association. The reservation row and all of its
// association rows are only ever written together, inside one
// transaction driven by the handler.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying pool so handlers can begin transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new reservation within the scope of an existing
// transaction. It populates the generated ID and timestamps on the
// provided record and returns any error from the database. The
// caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (userId, numberOfPeople, date, time, status, note) VALUES (?, ?, ?, ?, ?, ?)`
	var note interface{}
	if res.Note != nil {
		note = *res.Note
	}
	result, err := tx.ExecContext(ctx, q, res.UserID, res.PartySize, res.Date, res.Time, string(res.Status), note)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT id, userId, numberOfPeople, date, time, status, note, createdAt, updatedAt FROM reservations WHERE id = ?`
	var noteOut sql.NullString
	var status string
	err = tx.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.UserID, &res.PartySize, &res.Date, &res.Time, &status,
		&noteOut, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	res.Status = model.Status(status)
	if noteOut.Valid {
		n := noteOut.String
		res.Note = &n
	}
	return nil
}

// CreateTablesBulkTx inserts the reservationtables rows for a
// reservation in a single statement. Each table ID produces one
// association row referencing the same reservation. The insertion
// occurs within the provided transaction. Passing an empty slice has
// no effect and returns nil.
func (r *ReservationRepo) CreateTablesBulkTx(ctx context.Context, tx *sql.Tx, reservationID uint64, tableIDs []uint64) error {
	if len(tableIDs) == 0 {
		return nil
	}
	query := `INSERT INTO reservationtables (reservationId, tableId) VALUES `
	args := make([]interface{}, 0, len(tableIDs)*2)
	for i, tid := range tableIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, reservationID, tid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ReservationDetail is a reservation annotated with the concatenated
// numbers of its associated tables. It is the projection returned to
// customers by the my-reservations listing.
type ReservationDetail struct {
	ID           uint64  `json:"id"`
	PartySize    uint32  `json:"party_size"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
	TableNumbers string  `json:"table_numbers"`
}

// AdminReservationDetail extends ReservationDetail with the identity
// of the owning user. It is returned by the admin-wide listing so
// staff can contact the booking party.
type AdminReservationDetail struct {
	ID           uint64  `json:"id"`
	UserID       uint64  `json:"user_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	PartySize    uint32  `json:"party_size"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
	TableNumbers string  `json:"table_numbers"`
}

// ListByUser returns every reservation owned by the given user,
// newest booking first (date descending, then time descending). The
// table numbers of each reservation are concatenated by the database
// so no per-row follow-up query is needed. When no reservations
// exist, an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.numberOfPeople, r.date, r.time, r.status, r.note, r.createdAt,
	                  GROUP_CONCAT(t.number) AS tableNumbers
	           FROM reservations r
	           LEFT JOIN reservationtables rt ON rt.reservationId = r.id
	           LEFT JOIN tables t ON t.id = rt.tableId
	           WHERE r.userId = ?
	           GROUP BY r.id
	           ORDER BY r.date DESC, r.time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var note, numbers sql.NullString
		if err := rows.Scan(&d.ID, &d.PartySize, &d.Date, &d.Time, &d.Status, &note, &d.CreatedAt, &numbers); err != nil {
			return nil, err
		}
		if note.Valid {
			n := note.String
			d.Note = &n
		}
		if numbers.Valid {
			d.TableNumbers = numbers.String
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListAll returns every reservation in the system regardless of
// owner, joined with the owning user's contact fields, in the same
// order as ListByUser. It backs the admin listing.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]AdminReservationDetail, error) {
	const q = `SELECT r.id, r.userId, u.firstName, u.lastName, u.email, u.phone,
	                  r.numberOfPeople, r.date, r.time, r.status, r.note, r.createdAt,
	                  GROUP_CONCAT(t.number) AS tableNumbers
	           FROM reservations r
	           JOIN users u ON u.id = r.userId
	           LEFT JOIN reservationtables rt ON rt.reservationId = r.id
	           LEFT JOIN tables t ON t.id = rt.tableId
	           GROUP BY r.id
	           ORDER BY r.date DESC, r.time DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]AdminReservationDetail, 0)
	for rows.Next() {
		var d AdminReservationDetail
		var note, numbers sql.NullString
		if err := rows.Scan(&d.ID, &d.UserID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
			&d.PartySize, &d.Date, &d.Time, &d.Status, &note, &d.CreatedAt, &numbers); err != nil {
			return nil, err
		}
		if note.Valid {
			n := note.String
			d.Note = &n
		}
		if numbers.Valid {
			d.TableNumbers = numbers.String
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateStatus writes the given status unconditionally. No existence
// check is performed: updating an unknown id affects zero rows and
// returns nil, matching the observed behavior of the workflow. The
// caller is responsible for validating the status label against the
// closed domain before calling.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
	_, err := r.db.ExecContext(ctx, "UPDATE reservations SET status=? WHERE id=?", string(status), id)
	return err
}

// GetOwnedPendingTx loads a reservation's owner and status within a
// transaction and verifies that it belongs to the given user and is
// still pending. It returns sql.ErrNoRows when the reservation does
// not exist, ErrForbidden when it belongs to a different user and
// ErrNotPending when it has already been confirmed or cancelled.
func (r *ReservationRepo) GetOwnedPendingTx(ctx context.Context, tx *sql.Tx, id, userID uint64) error {
	var ownerID uint64
	var status string
	err := tx.QueryRowContext(ctx, "SELECT userId, status FROM reservations WHERE id=?", id).Scan(&ownerID, &status)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	if model.Status(strings.ToLower(status)) != model.StatusPending {
		return ErrNotPending
	}
	return nil
}

// DeleteTx removes a reservation together with its association rows
// inside the provided transaction, so a withdrawn booking never
// leaves orphaned reservationtables rows behind.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservationtables WHERE reservationId=?", id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	return err
}
