package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/testutil"
)

func dateFromToday(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateReservation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	t2 := testutil.CreateTestTable(t, db, "T2", 4)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", map[string]interface{}{
		"party_size": 4,
		"date":       dateFromToday(1),
		"time":       "19:00",
		"table_ids":  []uint64{t1, t2},
	}, token))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ReservationID uint64 `json:"reservation_id"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	require.NotZero(t, resp.ReservationID)

	var status, timeOfDay string
	var owner uint64
	require.NoError(t, db.QueryRow(
		"SELECT userId, status, time FROM reservations WHERE id=?", resp.ReservationID).
		Scan(&owner, &status, &timeOfDay))
	assert.Equal(t, userID, owner)
	assert.Equal(t, "pending", status)
	assert.Equal(t, "19:00:00", timeOfDay)
	assert.Equal(t, 2, testutil.CountRows(t, db, "reservationtables"))
}

func TestCreateReservationTodayAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", map[string]interface{}{
		"party_size": 2,
		"date":       dateFromToday(0),
		"time":       "21:30",
		"table_ids":  []uint64{t1},
	}, token))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateReservationPastDateRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", map[string]interface{}{
		"party_size": 2,
		"date":       dateFromToday(-1),
		"time":       "19:00",
		"table_ids":  []uint64{t1},
	}, token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	testutil.DecodeJSON(t, rec, &resp)
	assert.Equal(t, "date cannot be in the past", resp["error"])
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservations"))
}

func TestCreateReservationUnknownTableRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", map[string]interface{}{
		"party_size": 2,
		"date":       dateFromToday(1),
		"time":       "19:00",
		"table_ids":  []uint64{t1, 9999},
	}, token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Nothing was written, not even the reservation row.
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservations"))
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservationtables"))
}

func TestCreateReservationDeduplicatesTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", map[string]interface{}{
		"party_size": 2,
		"date":       dateFromToday(1),
		"time":       "19:00",
		"table_ids":  []uint64{t1, t1, t1},
	}, token))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, testutil.CountRows(t, db, "reservationtables"))
}

func TestCreateReservationValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"zero party size", map[string]interface{}{
			"party_size": 0, "date": dateFromToday(1), "time": "19:00", "table_ids": []uint64{t1},
		}},
		{"no tables", map[string]interface{}{
			"party_size": 2, "date": dateFromToday(1), "time": "19:00", "table_ids": []uint64{},
		}},
		{"bad date format", map[string]interface{}{
			"party_size": 2, "date": "24/12/2026", "time": "19:00", "table_ids": []uint64{t1},
		}},
		{"bad time format", map[string]interface{}{
			"party_size": 2, "date": dateFromToday(1), "time": "7pm", "table_ids": []uint64{t1},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", tc.body, token))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservations"))
}

func TestCreateReservationRequiresAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodPost, "/v1/reservations", map[string]interface{}{
		"party_size": 2, "date": dateFromToday(1), "time": "19:00", "table_ids": []uint64{1},
	}, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodGet, "/v1/tables", nil, "garbage-token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListMyReservations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	jean := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	marie := testutil.CreateTestUser(t, db, "marie@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)

	testutil.CreateTestReservation(t, db, jean, model.StatusPending, "2026-10-01", "19:00:00", t1)
	testutil.CreateTestReservation(t, db, jean, model.StatusConfirmed, "2026-10-05", "20:00:00", t1)
	testutil.CreateTestReservation(t, db, marie, model.StatusPending, "2026-10-03", "19:00:00", t1)

	token := testutil.TokenFor(t, jean, "jean@example.com", model.RoleClient)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodGet, "/v1/my-reservations", nil, token))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []struct {
			ID           uint64 `json:"id"`
			Date         string `json:"date"`
			Status       string `json:"status"`
			TableNumbers string `json:"table_numbers"`
		} `json:"items"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	require.Len(t, resp.Items, 2)
	// Only Jean's bookings, newest first.
	assert.Equal(t, "2026-10-05", resp.Items[0].Date)
	assert.Equal(t, "confirmed", resp.Items[0].Status)
	assert.Equal(t, "T1", resp.Items[0].TableNumbers)
	assert.Equal(t, "2026-10-01", resp.Items[1].Date)
}

func TestDeleteReservation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	jean := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	marie := testutil.CreateTestUser(t, db, "marie@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)

	pending := testutil.CreateTestReservation(t, db, jean, model.StatusPending, "2026-10-01", "19:00:00", t1)
	confirmed := testutil.CreateTestReservation(t, db, jean, model.StatusConfirmed, "2026-10-02", "19:00:00", t1)
	token := testutil.TokenFor(t, jean, "jean@example.com", model.RoleClient)

	// Withdrawing a pending booking removes it and its associations.
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodDelete, fmt.Sprintf("/v1/reservations/%d", pending), nil, token))
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, 1, testutil.CountRows(t, db, "reservations"))
	assert.Equal(t, 1, testutil.CountRows(t, db, "reservationtables"))

	// Already processed bookings cannot be withdrawn.
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodDelete, fmt.Sprintf("/v1/reservations/%d", confirmed), nil, token))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Someone else's booking is off limits.
	marieToken := testutil.TokenFor(t, marie, "marie@example.com", model.RoleClient)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodDelete, fmt.Sprintf("/v1/reservations/%d", confirmed), nil, marieToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown ids report not found.
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodDelete, "/v1/reservations/9999", nil, token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp(db)
	userID := testutil.CreateTestUser(t, db, "jean@example.com", model.RoleClient)
	testutil.CreateTestTable(t, db, "T2", 4)
	testutil.CreateTestTable(t, db, "T1", 2)
	token := testutil.TokenFor(t, userID, "jean@example.com", model.RoleClient)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, testutil.MakeRequest(http.MethodGet, "/v1/tables", nil, token))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []struct {
			Number string `json:"number"`
			Seats  uint32 `json:"seats"`
		} `json:"items"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "T1", resp.Items[0].Number)
	assert.Equal(t, "T2", resp.Items[1].Number)
}
