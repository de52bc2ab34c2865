package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password, inserts the user and returns its ID.
// The email is normalized to lower case before the insert so the
// unique index catches case-variant duplicates.
func (r *UserRepo) Create(ctx context.Context, email, password, firstName, lastName, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password, firstName, lastName, phone, role) VALUES (?,?,?,?,?,?)",
		email, hash, firstName, lastName, phone, role)
	if err != nil {
		// MySQL reports duplicate keys as error 1062; sqlite (used in
		// tests) reports "UNIQUE constraint failed".
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") || strings.Contains(msg, "unique") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password,firstName,lastName,phone,role,createdAt,updatedAt FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password,firstName,lastName,phone,role,createdAt,updatedAt FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
