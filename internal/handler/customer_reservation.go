package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// CustomerHandler groups the repositories needed to create, list and
// withdraw reservations on behalf of clients. All methods assume
// that JWT authentication has already been performed by middleware
// and may return 401 Unauthorized if no identity is present in the
// context. The creation path runs its inserts inside a transaction
// to guarantee atomicity.
type CustomerHandler struct {
	ReservationRepo *repository.ReservationRepo // access to reservations and reservationtables
	TableRepo       *repository.TableRepo       // access to tables for id validation and listing
}

// NewCustomerHandler constructs a new CustomerHandler with the
// provided repositories. All dependencies must be non-nil.
func NewCustomerHandler(resRepo *repository.ReservationRepo, tableRepo *repository.TableRepo) *CustomerHandler {
	if resRepo == nil || tableRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{ReservationRepo: resRepo, TableRepo: tableRepo}
}

type createReservationReq struct {
	PartySize uint32   `json:"party_size" validate:"required,min=1"`
	Date      string   `json:"date" validate:"required"`
	Time      string   `json:"time" validate:"required"`
	TableIDs  []uint64 `json:"table_ids" validate:"required,min=1"`
	Note      string   `json:"note"`
}

// CreateReservation handles POST /v1/reservations. It validates the
// request, then inserts the reservation row and one association row
// per selected table in a single transaction. Any failure during the
// multi-insert sequence rolls back the whole unit, so no partial
// booking is ever observable. On success it returns 201 with the new
// reservation id.
//
// Validation stops at the rules the business actually enforces:
// there is no capacity check against the party size and no overlap
// check against other bookings of the same table and slot, so two
// concurrent requests can both reserve the same table. The time of
// day is only checked for shape, not against opening hours.
func (h *CustomerHandler) CreateReservation(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be formatted YYYY-MM-DD"})
	}
	// Compare at day granularity: booking for today is allowed.
	today := time.Now().UTC().Format("2006-01-02")
	if date.Format("2006-01-02") < today {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date cannot be in the past"})
	}

	timeOfDay, err := parseTimeOfDay(req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be formatted HH:MM"})
	}

	// Deduplicate table IDs so a repeated selection does not produce
	// duplicate association rows.
	unique := make([]uint64, 0, len(req.TableIDs))
	seen := make(map[uint64]struct{})
	for _, id := range req.TableIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one table is required"})
	}

	ctx := c.Request().Context()
	// Every selected id must refer to a known table before any write
	// happens.
	n, err := h.TableRepo.CountByIDs(ctx, unique)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if n != len(unique) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown table id"})
	}

	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res := &model.Reservation{
		UserID:    ident.UserID,
		PartySize: req.PartySize,
		Date:      req.Date,
		Time:      timeOfDay,
		Status:    model.StatusPending,
	}
	if req.Note != "" {
		note := req.Note
		res.Note = &note
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := h.ReservationRepo.CreateTablesBulkTx(ctx, tx, res.ID, unique); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	committed = true

	// Best-effort event for downstream consumers; the reservation is
	// already durable, so publish failures are ignored.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(pubCtx, queue.ReservationEvent{
			Kind:          queue.KindReservationCreated,
			ReservationID: res.ID,
			UserID:        ident.UserID,
			PartySize:     req.PartySize,
			Date:          res.Date,
			Time:          res.Time,
			TableIDs:      unique,
			Status:        string(res.Status),
			OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "reservation created",
		"reservation_id": res.ID,
	})
}

// ListMyReservations handles GET /v1/my-reservations. It returns all
// reservations owned by the caller, most recent booking first, each
// annotated with the concatenated numbers of its tables. When no
// reservations exist it returns an empty array.
func (h *CustomerHandler) ListMyReservations(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	details, err := h.ReservationRepo.ListByUser(ctx, ident.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": details,
	})
}

// DeleteReservation handles DELETE /v1/reservations/:id. A client
// can withdraw a reservation of their own while it is still pending.
// The reservation row and its association rows are removed in one
// transaction. Returns 204 on success, 404 when the reservation does
// not exist, 403 when it belongs to another user and 409 once an
// administrator has processed it.
func (h *CustomerHandler) DeleteReservation(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.ReservationRepo.GetOwnedPendingTx(ctx, tx, resID, ident.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		if errors.Is(err, repository.ErrNotPending) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already processed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := h.ReservationRepo.DeleteTx(ctx, tx, resID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// parseTimeOfDay accepts "HH:MM" or "HH:MM:SS" and normalizes to
// "HH:MM:SS" for storage, so ordering by time works the same in the
// database and in responses.
func parseTimeOfDay(raw string) (string, error) {
	if t, err := time.Parse("15:04", raw); err == nil {
		return t.Format("15:04:05"), nil
	}
	t, err := time.Parse("15:04:05", raw)
	if err != nil {
		return "", err
	}
	return t.Format("15:04:05"), nil
}
