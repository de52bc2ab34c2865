// Package testutil provides an in-memory database and request
// helpers shared by the repository and handler tests. Tests run
// against sqlite with the same column names and statements the
// application issues against MySQL, so no query needs a test-only
// variant.
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// TestJWTSecret signs tokens in tests only.
const TestJWTSecret = "test-secret"

const schema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	firstName TEXT NOT NULL,
	lastName TEXT NOT NULL,
	phone TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'client',
	createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE tables (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	number TEXT NOT NULL UNIQUE,
	seats INTEGER NOT NULL,
	isAvailable INTEGER NOT NULL DEFAULT 1,
	createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE menuitems (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	price TEXT NOT NULL,
	category TEXT NOT NULL,
	imageUrl TEXT,
	isAvailable INTEGER NOT NULL DEFAULT 1,
	createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE reservations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	userId INTEGER NOT NULL REFERENCES users(id),
	numberOfPeople INTEGER NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	note TEXT,
	createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE reservationtables (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	reservationId INTEGER NOT NULL REFERENCES reservations(id),
	tableId INTEGER NOT NULL REFERENCES tables(id),
	createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SetupTestDB opens a fresh in-memory sqlite database with the full
// schema. The pool is capped at one connection because each :memory:
// connection is its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestConfig returns the configuration used when wiring handlers in
// tests. The low bcrypt cost keeps signup tests fast.
func TestConfig() config.Config {
	return config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      TestJWTSecret,
		AccessTTLHours: 24,
		BcryptCost:     4,
	}
}

// NewApp wires the full application against the given database and
// returns the Echo instance, ready to serve httptest requests. Routes,
// middleware and validation are the same as in production; only redis
// caching and rate limiting are left out.
func NewApp(db *sql.DB) *echo.Echo {
	cfg := TestConfig()
	userRepo := repository.NewUserRepo(db)
	tableRepo := repository.NewTableRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	resRepo := repository.NewReservationRepo(db)

	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo))
	router.RegisterPublic(e, handler.NewMenuHandler(menuRepo))
	router.RegisterCustomer(e, handler.NewCustomerHandler(resRepo, tableRepo), handler.NewTableHandler(tableRepo), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminReservationHandler(resRepo), handler.NewMenuHandler(menuRepo), cfg.JWTSecret)
	return e
}

// CreateTestUser inserts a user with a real bcrypt hash and returns
// its id. The password for every test user is "secret123".
func CreateTestUser(t *testing.T, db *sql.DB, email, role string) uint64 {
	t.Helper()
	repo := repository.NewUserRepo(db)
	id, err := repo.Create(context.Background(), email, "secret123", "Test", "User", "0600000000", role, 4)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return id
}

// CreateTestTable inserts a table and returns its id.
func CreateTestTable(t *testing.T, db *sql.DB, number string, seats int) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO tables (number, seats) VALUES (?,?)", number, seats)
	if err != nil {
		t.Fatalf("create test table: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// CreateTestReservation inserts a reservation plus one association
// row per table id, committing directly, and returns the reservation
// id. It bypasses the HTTP layer so tests can prepare arbitrary
// states, including confirmed and cancelled ones.
func CreateTestReservation(t *testing.T, db *sql.DB, userID uint64, status model.Status, date, timeOfDay string, tableIDs ...uint64) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO reservations (userId, numberOfPeople, date, time, status) VALUES (?,?,?,?,?)",
		userID, 2, date, timeOfDay, string(status))
	if err != nil {
		t.Fatalf("create test reservation: %v", err)
	}
	id, _ := res.LastInsertId()
	for _, tid := range tableIDs {
		if _, err := db.Exec("INSERT INTO reservationtables (reservationId, tableId) VALUES (?,?)", id, tid); err != nil {
			t.Fatalf("create test association: %v", err)
		}
	}
	return uint64(id)
}

// TokenFor issues a signed access token for the given user id and
// role, suitable for the Authorization header of test requests.
func TokenFor(t *testing.T, userID uint64, email, role string) string {
	t.Helper()
	u := model.User{ID: userID, Email: email, Role: role, FirstName: "Test", LastName: "User"}
	access, err := utils.NewAccessToken(TestJWTSecret, u, 1)
	if err != nil {
		t.Fatalf("issue test token: %v", err)
	}
	return access.Token
}

// MakeRequest builds an HTTP test request with an optional JSON body
// and bearer token.
func MakeRequest(method, path string, body interface{}, token string) *http.Request {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

// DecodeJSON decodes the recorded response body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// CountRows returns the number of rows in the given table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
