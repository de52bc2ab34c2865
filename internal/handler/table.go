package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// TableHandler lists the seating reference data shown on the
// reservation form.
type TableHandler struct {
	Tables *repository.TableRepo
}

func NewTableHandler(tableRepo *repository.TableRepo) *TableHandler {
	if tableRepo == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Tables: tableRepo}
}

type tableResp struct {
	ID          uint64 `json:"id"`
	Number      string `json:"number"`
	Seats       uint32 `json:"seats"`
	IsAvailable bool   `json:"is_available"`
}

// ListTables handles GET /v1/tables. It returns every table ordered
// by number so clients can pick one or more when booking.
func (h *TableHandler) ListTables(c echo.Context) error {
	tables, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
	}
	out := make([]tableResp, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableResp{ID: t.ID, Number: t.Number, Seats: t.Seats, IsAvailable: t.IsAvailable})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
