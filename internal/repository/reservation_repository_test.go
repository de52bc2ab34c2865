package repository_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/testutil"
)

func TestCreateReservationWithTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	userID := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	t2 := testutil.CreateTestTable(t, db, "T2", 4)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	res := &model.Reservation{
		UserID:    userID,
		PartySize: 4,
		Date:      "2026-12-24",
		Time:      "19:00:00",
		Status:    model.StatusPending,
	}
	require.NoError(t, repo.CreateTx(ctx, tx, res))
	require.NoError(t, repo.CreateTablesBulkTx(ctx, tx, res.ID, []uint64{t1, t2}))
	require.NoError(t, tx.Commit())

	assert.NotZero(t, res.ID)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.NotEmpty(t, res.CreatedAt)
	assert.Equal(t, 1, testutil.CountRows(t, db, "reservations"))
	assert.Equal(t, 2, testutil.CountRows(t, db, "reservationtables"))
}

func TestCreateReservationRollbackLeavesNoRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	userID := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	res := &model.Reservation{
		UserID:    userID,
		PartySize: 2,
		Date:      "2026-12-24",
		Time:      "20:00:00",
		Status:    model.StatusPending,
	}
	require.NoError(t, repo.CreateTx(ctx, tx, res))
	require.NoError(t, repo.CreateTablesBulkTx(ctx, tx, res.ID, []uint64{t1}))
	require.NoError(t, tx.Rollback())

	// Neither the reservation nor its association survives an abort.
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservations"))
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservationtables"))
}

func TestListByUserOrderingAndIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	alice := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	bob := testutil.CreateTestUser(t, db, "bob@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	t2 := testutil.CreateTestTable(t, db, "T2", 4)

	// Inserted out of order on purpose.
	early := testutil.CreateTestReservation(t, db, alice, model.StatusPending, "2026-10-01", "12:00:00", t1)
	lateEvening := testutil.CreateTestReservation(t, db, alice, model.StatusPending, "2026-10-02", "21:00:00", t1, t2)
	lateNoon := testutil.CreateTestReservation(t, db, alice, model.StatusConfirmed, "2026-10-02", "12:00:00", t2)
	testutil.CreateTestReservation(t, db, bob, model.StatusPending, "2026-10-03", "19:00:00", t1)

	details, err := repo.ListByUser(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, details, 3)

	// Newest date first, later time first within a date.
	assert.Equal(t, lateEvening, details[0].ID)
	assert.Equal(t, lateNoon, details[1].ID)
	assert.Equal(t, early, details[2].ID)

	numbers := strings.Split(details[0].TableNumbers, ",")
	assert.ElementsMatch(t, []string{"T1", "T2"}, numbers)
	assert.Equal(t, "confirmed", details[1].Status)
}

func TestListByUserEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	alice := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)

	details, err := repo.ListByUser(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestListAllIncludesContactFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	alice := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	bob := testutil.CreateTestUser(t, db, "bob@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)

	testutil.CreateTestReservation(t, db, alice, model.StatusPending, "2026-10-01", "19:00:00", t1)
	testutil.CreateTestReservation(t, db, bob, model.StatusPending, "2026-10-02", "19:00:00", t1)

	details, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, bob, details[0].UserID)
	assert.Equal(t, "bob@example.com", details[0].Email)
	assert.NotEmpty(t, details[0].Phone)
	assert.Equal(t, "T1", details[0].TableNumbers)
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	alice := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	id := testutil.CreateTestReservation(t, db, alice, model.StatusPending, "2026-10-01", "19:00:00")

	require.NoError(t, repo.UpdateStatus(context.Background(), id, model.StatusConfirmed))

	var status string
	require.NoError(t, db.QueryRow("SELECT status FROM reservations WHERE id=?", id).Scan(&status))
	assert.Equal(t, "confirmed", status)
}

func TestUpdateStatusUnknownIDIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)

	// Writing to an id that does not exist affects zero rows and is
	// still reported as success.
	require.NoError(t, repo.UpdateStatus(context.Background(), 9999, model.StatusCancelled))
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservations"))
}

func TestGetOwnedPendingTx(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	alice := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	bob := testutil.CreateTestUser(t, db, "bob@example.com", model.RoleClient)
	pending := testutil.CreateTestReservation(t, db, alice, model.StatusPending, "2026-10-01", "19:00:00")
	confirmed := testutil.CreateTestReservation(t, db, alice, model.StatusConfirmed, "2026-10-02", "19:00:00")

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	assert.NoError(t, repo.GetOwnedPendingTx(ctx, tx, pending, alice))
	assert.ErrorIs(t, repo.GetOwnedPendingTx(ctx, tx, 9999, alice), sql.ErrNoRows)
	assert.ErrorIs(t, repo.GetOwnedPendingTx(ctx, tx, pending, bob), repository.ErrForbidden)
	assert.ErrorIs(t, repo.GetOwnedPendingTx(ctx, tx, confirmed, alice), repository.ErrNotPending)
}

func TestDeleteTxRemovesAssociations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReservationRepo(db)
	alice := testutil.CreateTestUser(t, db, "alice@example.com", model.RoleClient)
	t1 := testutil.CreateTestTable(t, db, "T1", 2)
	t2 := testutil.CreateTestTable(t, db, "T2", 4)
	id := testutil.CreateTestReservation(t, db, alice, model.StatusPending, "2026-10-01", "19:00:00", t1, t2)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteTx(ctx, tx, id))
	require.NoError(t, tx.Commit())

	assert.Equal(t, 0, testutil.CountRows(t, db, "reservations"))
	assert.Equal(t, 0, testutil.CountRows(t, db, "reservationtables"))
}
