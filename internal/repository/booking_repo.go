package repository

import (
	"context"

	"github.com/railbook/railbook/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking, passengerIDs []uint) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*models.Booking, error)
	FindByIDForUserForUpdate(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Booking, error)
	CountPassengers(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

// Create inserts the booking row plus one booking_passengers row per
// referenced passenger, preserving submission order.
func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking, passengerIDs []uint) error {
	if err := tx.WithContext(ctx).Create(booking).Error; err != nil {
		return err
	}

	rows := make([]models.BookingPassenger, len(passengerIDs))
	for i, pid := range passengerIDs {
		rows[i] = models.BookingPassenger{
			BookingID:   booking.ID,
			PassengerID: pid,
			Position:    i,
		}
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	booking.Passengers = rows
	return nil
}

func (r *bookingRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers", orderPassengers).
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUserForUpdate locks the booking row within the transaction so
// two concurrent confirms of the same booking cannot both observe PENDING.
func (r *bookingRepository) FindByIDForUserForUpdate(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CountPassengers(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.BookingPassenger{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers", orderPassengers).
		Preload("Train").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers", orderPassengers).
		Preload("Train").
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func orderPassengers(db *gorm.DB) *gorm.DB {
	return db.Order("booking_passengers.position ASC")
}
