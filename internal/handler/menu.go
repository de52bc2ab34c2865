package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// MenuHandler serves the public menu and the admin menu management
// endpoints.
type MenuHandler struct {
	Menu *repository.MenuRepo
}

func NewMenuHandler(menuRepo *repository.MenuRepo) *MenuHandler {
	if menuRepo == nil {
		panic("nil repository passed to NewMenuHandler")
	}
	return &MenuHandler{Menu: menuRepo}
}

type menuItemResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

// ListMenu handles GET /menu. The menu is public and ordered by
// category then name; responses are cached by the redis middleware.
func (h *MenuHandler) ListMenu(c echo.Context) error {
	items, err := h.Menu.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu"})
	}
	out := make([]menuItemResp, 0, len(items))
	for _, it := range items {
		out = append(out, menuItemResp{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Category:    it.Category,
			ImageURL:    it.ImageURL,
			IsAvailable: it.IsAvailable,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type menuItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Category    string `json:"category" validate:"required"`
	IsAvailable *bool  `json:"is_available"`
}

// CreateMenuItem handles POST /v1/admin/menu.
func (h *MenuHandler) CreateMenuItem(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	id, err := h.Menu.Create(c.Request().Context(), req.Name, req.Description, req.Price, req.Category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "menu item created",
		"id":      id,
	})
}

// UpdateMenuItem handles PATCH /v1/admin/menu/:id. All editable
// columns are overwritten; an unknown id affects zero rows and still
// reports success, mirroring the status update semantics.
func (h *MenuHandler) UpdateMenuItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	if err := h.Menu.Update(c.Request().Context(), id, req.Name, req.Description, req.Price, req.Category, available); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "menu item updated"})
}

// DeleteMenuItem handles DELETE /v1/admin/menu/:id.
func (h *MenuHandler) DeleteMenuItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	if err := h.Menu.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "menu item deleted"})
}
