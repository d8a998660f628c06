package service

import (
	"context"
	"testing"

	"github.com/railbook/railbook/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock FareClassRepository ---

type mockFareClassRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, fc *models.FareClass) error
	findByKeyFn     func(ctx context.Context, trainID uint, class, quota string) (*models.FareClass, error)
	findForUpdateFn func(ctx context.Context, tx *gorm.DB, trainID uint, class, quota string) (*models.FareClass, error)
	updateSeatsFn   func(ctx context.Context, tx *gorm.DB, id uint, seats int) error
}

func (m *mockFareClassRepo) Create(ctx context.Context, tx *gorm.DB, fc *models.FareClass) error {
	return m.createFn(ctx, tx, fc)
}
func (m *mockFareClassRepo) FindByKey(ctx context.Context, trainID uint, class, quota string) (*models.FareClass, error) {
	return m.findByKeyFn(ctx, trainID, class, quota)
}
func (m *mockFareClassRepo) FindByKeyForUpdate(ctx context.Context, tx *gorm.DB, trainID uint, class, quota string) (*models.FareClass, error) {
	return m.findForUpdateFn(ctx, tx, trainID, class, quota)
}
func (m *mockFareClassRepo) UpdateSeats(ctx context.Context, tx *gorm.DB, id uint, seats int) error {
	return m.updateSeatsFn(ctx, tx, id, seats)
}
func (m *mockFareClassRepo) GetDB() *gorm.DB { return nil }

// Validation happens before any row is touched, so a rejected request must
// never reach the repositories. The nil function fields enforce that: a
// stray repo call panics the test.

func TestCreateTrain_RejectsUnknownClass(t *testing.T) {
	svc := NewInventoryService(&mockTrainRepo{}, &mockFareClassRepo{})

	err := svc.CreateTrain(context.Background(), &models.Train{TrainNumber: "12951"}, []models.FareClass{
		{Class: "9X", Quota: models.QuotaGeneral, SeatsAvailable: 10, Price: 100},
	})

	assert.ErrorIs(t, err, ErrInvalidClass)
}

func TestCreateTrain_RejectsUnknownQuota(t *testing.T) {
	svc := NewInventoryService(&mockTrainRepo{}, &mockFareClassRepo{})

	err := svc.CreateTrain(context.Background(), &models.Train{TrainNumber: "12951"}, []models.FareClass{
		{Class: models.ClassSleeper, Quota: "XX", SeatsAvailable: 10, Price: 100},
	})

	assert.ErrorIs(t, err, ErrInvalidQuota)
}

func TestCreateTrain_RejectsNegativeSeats(t *testing.T) {
	svc := NewInventoryService(&mockTrainRepo{}, &mockFareClassRepo{})

	err := svc.CreateTrain(context.Background(), &models.Train{TrainNumber: "12951"}, []models.FareClass{
		{Class: models.ClassSleeper, Quota: models.QuotaGeneral, SeatsAvailable: -1, Price: 100},
	})

	assert.ErrorIs(t, err, ErrInvalidSeatCount)
}

func TestCreateTrain_RejectsNonPositivePrice(t *testing.T) {
	svc := NewInventoryService(&mockTrainRepo{}, &mockFareClassRepo{})

	for _, price := range []float64{0, -50} {
		err := svc.CreateTrain(context.Background(), &models.Train{TrainNumber: "12951"}, []models.FareClass{
			{Class: models.ClassSleeper, Quota: models.QuotaGeneral, SeatsAvailable: 10, Price: price},
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}

func TestCreateTrain_RejectsDuplicateClassQuotaInRequest(t *testing.T) {
	svc := NewInventoryService(&mockTrainRepo{}, &mockFareClassRepo{})

	err := svc.CreateTrain(context.Background(), &models.Train{TrainNumber: "12951"}, []models.FareClass{
		{Class: models.ClassSleeper, Quota: models.QuotaGeneral, SeatsAvailable: 10, Price: 100},
		{Class: models.ClassSleeper, Quota: models.QuotaGeneral, SeatsAvailable: 5, Price: 120},
	})

	assert.ErrorIs(t, err, ErrDuplicateClassQuota)
}

func TestCreateTrain_ZeroSeatsIsValid(t *testing.T) {
	err := validateFareClass(models.ClassSleeper, models.QuotaGeneral, 0, 100)
	assert.NoError(t, err)
}

func TestAddFareClass_RejectsInvalidInput(t *testing.T) {
	svc := NewInventoryService(&mockTrainRepo{}, &mockFareClassRepo{})

	cases := []struct {
		name    string
		class   string
		quota   string
		seats   int
		price   float64
		wantErr error
	}{
		{"unknown class", "9X", models.QuotaGeneral, 10, 100, ErrInvalidClass},
		{"unknown quota", models.ClassSleeper, "XX", 10, 100, ErrInvalidQuota},
		{"negative seats", models.ClassSleeper, models.QuotaGeneral, -5, 100, ErrInvalidSeatCount},
		{"zero price", models.ClassSleeper, models.QuotaGeneral, 10, 0, ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc, err := svc.AddFareClass(context.Background(), 1, tc.class, tc.quota, tc.seats, tc.price)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, fc)
		})
	}
}
