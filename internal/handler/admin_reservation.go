package handler

// This file defines HTTP handlers for administrators to oversee the
// reservation book. Admins can list every reservation in the system
// together with the booking party's contact details, and move a
// reservation between the pending, confirmed and cancelled states.
// Role enforcement happens in middleware; by the time these handlers
// run the caller is known to be an admin.

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// AdminReservationHandler wraps the reservation repository for
// admin-facing endpoints.
type AdminReservationHandler struct {
	ReservationRepo *repository.ReservationRepo
}

// NewAdminReservationHandler constructs an AdminReservationHandler.
// The repository must be non-nil.
func NewAdminReservationHandler(resRepo *repository.ReservationRepo) *AdminReservationHandler {
	if resRepo == nil {
		panic("nil repository passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{ReservationRepo: resRepo}
}

// ListReservations handles GET /v1/admin/reservations. It returns
// every reservation regardless of owner, annotated with the owning
// user's name, email and phone plus the concatenated table numbers,
// most recent booking first.
func (h *AdminReservationHandler) ListReservations(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.ReservationRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": details,
		"count": len(details),
	})
}

type updateStatusReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /v1/admin/reservations/:id/status. The
// submitted label must be one of pending, confirmed or cancelled;
// anything else is rejected before any write. The update itself is
// unconditional: any recognized value may be written regardless of
// the reservation's current state, and writing to an id that does
// not exist affects zero rows and still reports success.
func (h *AdminReservationHandler) UpdateStatus(c echo.Context) error {
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	status, ok := model.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	if err := h.ReservationRepo.UpdateStatus(ctx, resID, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(pubCtx, queue.ReservationEvent{
			Kind:          queue.KindStatusChanged,
			ReservationID: resID,
			Status:        string(status),
			OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"message": "reservation status updated",
	})
}
