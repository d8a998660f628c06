package service

import (
	"context"
	"testing"

	"github.com/railbook/railbook/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock PassengerRepository ---

type mockPassengerRepo struct {
	createFn     func(ctx context.Context, p *models.Passenger) error
	findFn       func(ctx context.Context, id, userID uint) (*models.Passenger, error)
	listFn       func(ctx context.Context, userID uint) ([]models.Passenger, error)
	countOwnedFn func(ctx context.Context, tx *gorm.DB, userID uint, ids []uint) (int64, error)
}

func (m *mockPassengerRepo) Create(ctx context.Context, p *models.Passenger) error {
	return m.createFn(ctx, p)
}
func (m *mockPassengerRepo) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Passenger, error) {
	return m.findFn(ctx, id, userID)
}
func (m *mockPassengerRepo) ListByUser(ctx context.Context, userID uint) ([]models.Passenger, error) {
	return m.listFn(ctx, userID)
}
func (m *mockPassengerRepo) CountOwned(ctx context.Context, tx *gorm.DB, userID uint, ids []uint) (int64, error) {
	return m.countOwnedFn(ctx, tx, userID, ids)
}

// --- Tests ---

func TestAddPassenger_Success(t *testing.T) {
	repo := &mockPassengerRepo{
		createFn: func(ctx context.Context, p *models.Passenger) error {
			p.ID = 11
			return nil
		},
	}

	svc := NewPassengerService(repo)
	p, err := svc.AddPassenger(context.Background(), 1, "  Asha Rao  ", 34, models.GenderFemale, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(11), p.ID)
	assert.Equal(t, "Asha Rao", p.Name, "name should be trimmed")
	assert.Equal(t, uint(1), p.UserID)
}

func TestAddPassenger_EmptyName(t *testing.T) {
	svc := NewPassengerService(&mockPassengerRepo{})
	p, err := svc.AddPassenger(context.Background(), 1, "   ", 34, models.GenderFemale, nil)

	assert.ErrorIs(t, err, ErrEmptyPassengerName)
	assert.Nil(t, p)
}

func TestAddPassenger_NonPositiveAge(t *testing.T) {
	svc := NewPassengerService(&mockPassengerRepo{})

	for _, age := range []int{-1, 0} {
		p, err := svc.AddPassenger(context.Background(), 1, "Asha Rao", age, models.GenderFemale, nil)
		assert.ErrorIs(t, err, ErrInvalidPassengerAge)
		assert.Nil(t, p)
	}
}

func TestAddPassenger_UnknownGender(t *testing.T) {
	svc := NewPassengerService(&mockPassengerRepo{})
	p, err := svc.AddPassenger(context.Background(), 1, "Asha Rao", 34, "Unknown", nil)

	assert.ErrorIs(t, err, ErrInvalidGender)
	assert.Nil(t, p)
}

func TestListPassengers_OnlyOwnRoster(t *testing.T) {
	var requestedUser uint
	repo := &mockPassengerRepo{
		listFn: func(ctx context.Context, userID uint) ([]models.Passenger, error) {
			requestedUser = userID
			return []models.Passenger{{ID: 11, UserID: userID, Name: "Asha Rao", Age: 34, Gender: models.GenderFemale}}, nil
		},
	}

	svc := NewPassengerService(repo)
	passengers, err := svc.ListPassengers(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), requestedUser)
	assert.Len(t, passengers, 1)
}

func TestListPassengers_EmptyRosterIsNotAnError(t *testing.T) {
	repo := &mockPassengerRepo{
		listFn: func(ctx context.Context, userID uint) ([]models.Passenger, error) {
			return nil, nil
		},
	}

	svc := NewPassengerService(repo)
	passengers, err := svc.ListPassengers(context.Background(), 1)

	assert.NoError(t, err)
	assert.NotNil(t, passengers)
	assert.Empty(t, passengers)
}

func TestGetPassenger_NotFound(t *testing.T) {
	repo := &mockPassengerRepo{
		findFn: func(ctx context.Context, id, userID uint) (*models.Passenger, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewPassengerService(repo)
	p, err := svc.GetPassenger(context.Background(), 99, 1)

	assert.ErrorIs(t, err, ErrPassengerNotFound)
	assert.Nil(t, p)
}
