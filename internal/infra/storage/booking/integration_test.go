//go:build integration
// +build integration

package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CoworkingService/pkg/txmanager"
)

func createBooking(t *testing.T, repo *booking.Repository, areaID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := repo.Create(context.Background(), &domain.Booking{
		AreaID:        areaID,
		UserID:        100,
		StartAt:       start,
		EndAt:         end,
		GuestCount:    1,
		Status:        status,
		UnitPrice:     decimal.NewFromInt(50),
		TotalPrice:    decimal.NewFromInt(50),
		PricingBranch: "then",
		PricingRuleID: 1,
	})
	require.NoError(t, err)
	return b
}

func TestRepository_CountActive(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	// окно запроса [11:00, 13:00)
	inside := createBooking(t, repo, 1, at(11), at(12), domain.StatusConfirmed)
	createBooking(t, repo, 1, at(10), at(12), domain.StatusPending)   // заканчивается внутри окна
	createBooking(t, repo, 1, at(9), at(14), domain.StatusConfirmed)  // покрывает окно
	createBooking(t, repo, 1, at(13), at(14), domain.StatusConfirmed) // начинается на границе: не пересекается
	createBooking(t, repo, 1, at(9), at(11), domain.StatusConfirmed)  // заканчивается на границе: не пересекается
	createBooking(t, repo, 1, at(11), at(12), domain.StatusCancelled)
	createBooking(t, repo, 1, at(11), at(12), domain.StatusRejected)
	createBooking(t, repo, 2, at(11), at(12), domain.StatusConfirmed)

	count, err := repo.CountActive(ctx, 1, at(11), at(13), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = repo.CountActive(ctx, 1, at(11), at(13), &inside.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// внутри транзакции используется вариант с блокировкой строк
	txm := txmanager.NewTransactionManager(db)
	err = txm.DoSerializable(ctx, func(txCtx context.Context) error {
		locked, err := repo.CountActive(txCtx, 1, at(11), at(13), nil)
		require.NoError(t, err)
		assert.Equal(t, 3, locked)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_StatusTransitions(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC)
	created := createBooking(t, repo, 1, start, start.Add(time.Hour), domain.StatusPending)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.StatusConfirmed))

	reason := "plans changed"
	require.NoError(t, repo.Cancel(ctx, created.ID, &reason))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, reason, *got.CancellationReason)
	assert.NotNil(t, got.CancelledAt)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(50)))

	_, err = repo.GetByID(ctx, created.ID+1000)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, created.ID+1000, domain.StatusConfirmed), booking.ErrBookingNotFound)
}

func TestRepository_Listings(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	late := createBooking(t, repo, 1, at(15), at(16), domain.StatusPending)
	early := createBooking(t, repo, 1, at(9), at(10), domain.StatusConfirmed)
	createBooking(t, repo, 1, at(11), at(12), domain.StatusCancelled)
	createBooking(t, repo, 2, at(11), at(12), domain.StatusPending)

	active, err := repo.GetByAreaWithFilter(ctx, domain.AreaBookingsFilter{AreaID: 1})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, early.ID, active[0].ID)
	assert.Equal(t, late.ID, active[1].ID)

	pending := domain.StatusPending
	onlyPending, err := repo.GetByAreaWithFilter(ctx, domain.AreaBookingsFilter{AreaID: 1, Status: &pending})
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, late.ID, onlyPending[0].ID)

	from, to := at(10), at(15)
	window, err := repo.GetByAreaWithFilter(ctx, domain.AreaBookingsFilter{AreaID: 1, From: &from, To: &to, IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, domain.StatusCancelled, window[0].Status)

	mine, err := repo.GetByUserID(ctx, 100, nil)
	require.NoError(t, err)
	require.Len(t, mine, 4)
	assert.Equal(t, late.ID, mine[0].ID)

	none, err := repo.GetByUserID(ctx, 101, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
