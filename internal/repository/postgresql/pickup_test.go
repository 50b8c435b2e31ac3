package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "agromarket/internal/db/mocks"
	"agromarket/internal/repository"
	"agromarket/internal/repository/postgresql"
)

func TestPickupRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		pickup := &repository.Pickup{
			OrderID:        5,
			Status:         "pending",
			PickupDate:     now.Add(48 * time.Hour),
			PickupLocation: "North Market",
			PickupNotes:    "gate B",
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		mockTx.EXPECT().Get(
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(pickup.OrderID),
			gomock.Eq(pickup.Status),
			gomock.Eq(pickup.PickupDate),
			gomock.Eq(pickup.PickupLocation),
			gomock.Eq(pickup.AssignedTo),
			gomock.Eq(pickup.ContactPerson),
			gomock.Eq(pickup.PickupNotes),
			gomock.Eq(pickup.CreatedAt),
			gomock.Eq(pickup.UpdatedAt),
		).DoAndReturn(func(_ context.Context, dest *int64, _ string, _ ...interface{}) error {
			*dest = 10
			return nil
		})

		id, err := repo.CreateTx(ctx, mockTx, pickup)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), id)
	})

	t.Run("unique violation surfaces unwrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "pickups_order_id_key"}
		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgErr)

		_, err := repo.CreateTx(ctx, mockTx, &repository.Pickup{OrderID: 5})

		var got *pgconn.PgError
		assert.ErrorAs(t, err, &got)
		assert.Equal(t, "23505", got.Code)
	})
}

func TestPickupRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		driverID := int64(7)
		testPickup := &repository.Pickup{
			ID:             10,
			OrderID:        5,
			Status:         "assigned",
			PickupLocation: "North Market",
			AssignedTo:     &driverID,
		}

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(10))).
			DoAndReturn(func(_ context.Context, dest *repository.Pickup, _ string, _ ...interface{}) error {
				*dest = *testPickup
				return nil
			})

		pickup, err := repo.GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, testPickup, pickup)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		pickup, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, pickup)
	})
}

func TestPickupRepo_GetByOrderIDTx(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(5))).
			Return(pgx.ErrNoRows)

		pickup, err := repo.GetByOrderIDTx(ctx, mockTx, 5)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, pickup)
	})
}

func TestPickupRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		pickup := &repository.Pickup{ID: 10, Status: "in_transit", PickupLocation: "North Market"}

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(pickup.Status),
			gomock.Eq(pickup.PickupDate),
			gomock.Eq(pickup.PickupLocation),
			gomock.Eq(pickup.AssignedTo),
			gomock.Eq(pickup.ContactPerson),
			gomock.Eq(pickup.PickupNotes),
			gomock.Eq(pickup.UpdatedAt),
			gomock.Eq(pickup.ID),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateTx(ctx, mockTx, pickup)
		assert.NoError(t, err)
	})

	t.Run("no rows affected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateTx(ctx, mockTx, &repository.Pickup{ID: 999})
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.UpdateTx(ctx, mockTx, &repository.Pickup{ID: 10})
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestPickupRepo_CountActiveByDriverTx(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewPickupRepo(mockDB)

	mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(7))).
		DoAndReturn(func(_ context.Context, dest *int, _ string, _ ...interface{}) error {
			*dest = 2
			return nil
		})

	count, err := repo.CountActiveByDriverTx(ctx, mockTx, 7)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPickupRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("no filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		testPickups := []*repository.Pickup{{ID: 1}, {ID: 2}}
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Pickup, _ string, _ ...interface{}) error {
				*dest = testPickups
				return nil
			})

		pickups, err := repo.List(ctx, postgresql.PickupFilter{})
		assert.NoError(t, err)
		assert.Equal(t, testPickups, pickups)
	})

	t.Run("status and driver filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewPickupRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("assigned"), gomock.Eq(int64(7))).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Pickup, query string, _ ...interface{}) error {
				assert.Contains(t, query, "status = $1")
				assert.Contains(t, query, "assigned_to = $2")
				*dest = []*repository.Pickup{{ID: 3}}
				return nil
			})

		pickups, err := repo.List(ctx, postgresql.PickupFilter{Status: "assigned", DriverID: 7})
		assert.NoError(t, err)
		assert.Len(t, pickups, 1)
	})
}
