package repository

import (
	"context"

	"github.com/railbook/railbook/internal/models"
	"gorm.io/gorm"
)

type TrainRepository interface {
	Create(ctx context.Context, tx *gorm.DB, train *models.Train) error
	FindByID(ctx context.Context, id uint) (*models.Train, error)
	FindByNumber(ctx context.Context, trainNumber string) (*models.Train, error)
	FindAll(ctx context.Context) ([]models.Train, error)
	Search(ctx context.Context, origin, destination, date string) ([]models.Train, error)
	GetDB() *gorm.DB
}

type trainRepository struct {
	db *gorm.DB
}

func NewTrainRepository(db *gorm.DB) TrainRepository {
	return &trainRepository{db: db}
}

func (r *trainRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *trainRepository) Create(ctx context.Context, tx *gorm.DB, train *models.Train) error {
	return tx.WithContext(ctx).Create(train).Error
}

func (r *trainRepository) FindByID(ctx context.Context, id uint) (*models.Train, error) {
	var train models.Train
	if err := r.db.WithContext(ctx).First(&train, id).Error; err != nil {
		return nil, err
	}
	return &train, nil
}

func (r *trainRepository) FindByNumber(ctx context.Context, trainNumber string) (*models.Train, error) {
	var train models.Train
	err := r.db.WithContext(ctx).
		Where("train_number = ?", trainNumber).
		First(&train).Error
	if err != nil {
		return nil, err
	}
	return &train, nil
}

func (r *trainRepository) FindAll(ctx context.Context) ([]models.Train, error) {
	var trains []models.Train
	err := r.db.WithContext(ctx).
		Preload("Classes", orderClasses).
		Order("id ASC").
		Find(&trains).Error
	if err != nil {
		return nil, err
	}
	return trains, nil
}

// Search matches lowercased substrings of origin/destination and the exact
// service date. Callers normalize the inputs; see availability service.
func (r *trainRepository) Search(ctx context.Context, origin, destination, date string) ([]models.Train, error) {
	var trains []models.Train
	err := r.db.WithContext(ctx).
		Preload("Classes", orderClasses).
		Where("LOWER(origin) LIKE ? AND LOWER(destination) LIKE ? AND date = ?",
			"%"+origin+"%", "%"+destination+"%", date).
		Order("id ASC").
		Find(&trains).Error
	if err != nil {
		return nil, err
	}
	return trains, nil
}

// orderClasses keeps fare-class rows in insertion order within one result.
func orderClasses(db *gorm.DB) *gorm.DB {
	return db.Order("fare_classes.id ASC")
}
