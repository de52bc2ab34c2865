package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// AuthHandler bundles dependencies for the signup and login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userPart struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
type authResp struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    userPart  `json:"user"`
}

// Signup creates a client account and returns a signed token
// immediately so the new user is logged in. Every account created
// through this endpoint gets the client role; admin accounts are
// seeded at initialization only.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Phone, model.RoleClient, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u := model.User{
		ID:        uid,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleClient,
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Message: "account created",
		Token:   access.Token,
		Expires: access.Exp,
		User:    userPart{ID: uid, Email: u.Email, Role: u.Role, FirstName: u.FirstName, LastName: u.LastName},
	})
}

// Login verifies credentials and returns a fresh token. Unknown
// email and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Message: "login successful",
		Token:   access.Token,
		Expires: access.Exp,
		User:    userPart{ID: u.ID, Email: u.Email, Role: u.Role, FirstName: u.FirstName, LastName: u.LastName},
	})
}
