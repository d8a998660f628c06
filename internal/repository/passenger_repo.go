package repository

import (
	"context"

	"github.com/railbook/railbook/internal/models"
	"gorm.io/gorm"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *models.Passenger) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*models.Passenger, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Passenger, error)
	CountOwned(ctx context.Context, tx *gorm.DB, userID uint, ids []uint) (int64, error)
}

type passengerRepository struct {
	db *gorm.DB
}

func NewPassengerRepository(db *gorm.DB) PassengerRepository {
	return &passengerRepository{db: db}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *models.Passenger) error {
	return r.db.WithContext(ctx).Create(passenger).Error
}

func (r *passengerRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *passengerRepository) ListByUser(ctx context.Context, userID uint) ([]models.Passenger, error) {
	var passengers []models.Passenger
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&passengers).Error
	if err != nil {
		return nil, err
	}
	return passengers, nil
}

// CountOwned reports how many of the given passenger ids belong to the user.
// Distinct ids only; the caller compares against the de-duplicated count.
func (r *passengerRepository) CountOwned(ctx context.Context, tx *gorm.DB, userID uint, ids []uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Passenger{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Count(&count).Error
	return count, err
}
