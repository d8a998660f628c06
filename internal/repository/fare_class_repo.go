package repository

import (
	"context"

	"github.com/railbook/railbook/internal/models"
	"gorm.io/gorm"
)

type FareClassRepository interface {
	Create(ctx context.Context, tx *gorm.DB, fc *models.FareClass) error
	FindByKey(ctx context.Context, trainID uint, class, quota string) (*models.FareClass, error)
	FindByKeyForUpdate(ctx context.Context, tx *gorm.DB, trainID uint, class, quota string) (*models.FareClass, error)
	UpdateSeats(ctx context.Context, tx *gorm.DB, id uint, seats int) error
	GetDB() *gorm.DB
}

type fareClassRepository struct {
	db *gorm.DB
}

func NewFareClassRepository(db *gorm.DB) FareClassRepository {
	return &fareClassRepository{db: db}
}

func (r *fareClassRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *fareClassRepository) Create(ctx context.Context, tx *gorm.DB, fc *models.FareClass) error {
	return tx.WithContext(ctx).Create(fc).Error
}

func (r *fareClassRepository) FindByKey(ctx context.Context, trainID uint, class, quota string) (*models.FareClass, error) {
	var fc models.FareClass
	err := r.db.WithContext(ctx).
		Where("train_id = ? AND class = ? AND quota = ?", trainID, class, quota).
		First(&fc).Error
	if err != nil {
		return nil, err
	}
	return &fc, nil
}

// FindByKeyForUpdate acquires a row-level lock on the fare-class row within
// the given transaction. Every seat-count mutation for one (train, class,
// quota) key goes through this lock, which serializes concurrent confirms
// and cancels against the same seat pool.
func (r *fareClassRepository) FindByKeyForUpdate(ctx context.Context, tx *gorm.DB, trainID uint, class, quota string) (*models.FareClass, error) {
	var fc models.FareClass
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("train_id = ? AND class = ? AND quota = ?", trainID, class, quota).
		First(&fc).Error
	if err != nil {
		return nil, err
	}
	return &fc, nil
}

func (r *fareClassRepository) UpdateSeats(ctx context.Context, tx *gorm.DB, id uint, seats int) error {
	return tx.WithContext(ctx).
		Model(&models.FareClass{}).
		Where("id = ?", id).
		Update("seats_available", seats).Error
}
