package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "agromarket/internal/db/mocks"
	"agromarket/internal/repository"
	"agromarket/internal/repository/postgresql"
)

func TestDriverRepo_GetByIDTx(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewDriverRepo(mockDB)

		testDriver := &repository.DriverDetails{
			UserID:             7,
			Name:               "P. Okoye",
			AvailabilityStatus: "available",
			VehicleType:        "van",
			MaxLoadCapacity:    3,
		}

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(7))).
			DoAndReturn(func(_ context.Context, dest *repository.DriverDetails, query string, _ ...interface{}) error {
				assert.Contains(t, query, "FOR UPDATE")
				*dest = *testDriver
				return nil
			})

		driver, err := repo.GetByIDTx(ctx, mockTx, 7)
		assert.NoError(t, err)
		assert.Equal(t, testDriver, driver)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewDriverRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		driver, err := repo.GetByIDTx(ctx, mockTx, 99)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, driver)
	})
}

func TestDriverRepo_SetAvailabilityTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewDriverRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("busy"), gomock.Any(), gomock.Eq(int64(7))).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.SetAvailabilityTx(ctx, mockTx, 7, "busy")
		assert.NoError(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewDriverRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.SetAvailabilityTx(ctx, mockTx, 99, "available")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewDriverRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.SetAvailabilityTx(ctx, mockTx, 7, "busy")
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestDriverRepo_IncrementCompletedTx(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewDriverRepo(mockDB)

	mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(7))).
		Return(pgconn.CommandTag("UPDATE 1"), nil)

	err := repo.IncrementCompletedTx(ctx, mockTx, 7)
	assert.NoError(t, err)
}

func TestDriverRepo_ListAvailable(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewDriverRepo(mockDB)

	testDrivers := []*repository.DriverDetails{
		{UserID: 7, AvailabilityStatus: "available", Rating: 4.8},
		{UserID: 9, AvailabilityStatus: "available", Rating: 4.2},
	}

	mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dest *[]*repository.DriverDetails, _ string, _ ...interface{}) error {
			*dest = testDrivers
			return nil
		})

	drivers, err := repo.ListAvailable(ctx)
	assert.NoError(t, err)
	assert.Equal(t, testDrivers, drivers)
}
