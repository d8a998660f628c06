package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("booking status does not allow this transition")
	ErrInsufficientSeats  = errors.New("not enough seats available")
	ErrForeignPassenger   = errors.New("passenger does not belong to this user")
	ErrEmptyPassengerList = errors.New("at least one passenger is required")
)

type ReservationService interface {
	CreateBooking(ctx context.Context, userID, trainID uint, passengerIDs []uint, class, quota string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error)
	ListBookings(ctx context.Context, userID uint) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)
}

type reservationService struct {
	bookingRepo   repository.BookingRepository
	fareClassRepo repository.FareClassRepository
	passengerRepo repository.PassengerRepository
	publisher     *rabbitmq.Publisher
}

func NewReservationService(
	bookingRepo repository.BookingRepository,
	fareClassRepo repository.FareClassRepository,
	passengerRepo repository.PassengerRepository,
	publisher *rabbitmq.Publisher,
) ReservationService {
	return &reservationService{
		bookingRepo:   bookingRepo,
		fareClassRepo: fareClassRepo,
		passengerRepo: passengerRepo,
		publisher:     publisher,
	}
}

// CreateBooking records intent only: the booking starts PENDING and no seats
// are reserved until ConfirmBooking. There is no hold between create and
// confirm, so a pending booking can still fail its confirm when the pool
// drains in the meantime.
func (s *reservationService) CreateBooking(ctx context.Context, userID, trainID uint, passengerIDs []uint, class, quota string) (*models.Booking, error) {
	if len(passengerIDs) == 0 {
		return nil, ErrEmptyPassengerList
	}
	ids := dedupe(passengerIDs)

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. The fare class must exist on this train
		if _, err := s.fareClassRepo.FindByKey(ctx, trainID, class, quota); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassQuotaNotFound
			}
			return err
		}

		// 2. Every referenced passenger must belong to the caller
		owned, err := s.passengerRepo.CountOwned(ctx, tx, userID, ids)
		if err != nil {
			return err
		}
		if owned != int64(len(ids)) {
			return ErrForeignPassenger
		}

		// 3. Record the booking, seats untouched
		booking := &models.Booking{
			PNR:     uuid.NewString(),
			UserID:  userID,
			TrainID: trainID,
			Class:   class,
			Quota:   quota,
			Status:  models.StatusPending,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking, ids); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyBookingCreated, result)
	return result, nil
}

// ConfirmBooking flips a PENDING booking to CONFIRMED and decrements the
// seat pool by the booking's passenger count, both inside one transaction.
// Train, class and quota come from the stored booking, never from the caller.
func (s *reservationService) ConfirmBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the booking row so concurrent confirms serialize
		booking, err := s.bookingRepo.FindByIDForUserForUpdate(ctx, tx, bookingID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.Status.CanTransition(models.StatusConfirmed) {
			return ErrInvalidTransition
		}

		seatsNeeded, err := s.bookingRepo.CountPassengers(ctx, tx, booking.ID)
		if err != nil {
			return err
		}

		// Lock the seat pool, then check-and-decrement under the lock
		fc, err := s.fareClassRepo.FindByKeyForUpdate(ctx, tx, booking.TrainID, booking.Class, booking.Quota)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassQuotaNotFound
			}
			return err
		}
		if int64(fc.SeatsAvailable) < seatsNeeded {
			return ErrInsufficientSeats
		}
		if err := s.fareClassRepo.UpdateSeats(ctx, tx, fc.ID, fc.SeatsAvailable-int(seatsNeeded)); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, models.StatusConfirmed); err != nil {
			return err
		}
		booking.Status = models.StatusConfirmed
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyBookingConfirmed, result)
	return result, nil
}

// CancelBooking moves a booking to CANCELLED. Seats are restored only when
// the booking had been confirmed; pending bookings never held any.
func (s *reservationService) CancelBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUserForUpdate(ctx, tx, bookingID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.Status.CanTransition(models.StatusCancelled) {
			return ErrInvalidTransition
		}

		if booking.Status == models.StatusConfirmed {
			seatsHeld, err := s.bookingRepo.CountPassengers(ctx, tx, booking.ID)
			if err != nil {
				return err
			}
			fc, err := s.fareClassRepo.FindByKeyForUpdate(ctx, tx, booking.TrainID, booking.Class, booking.Quota)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrClassQuotaNotFound
				}
				return err
			}
			if err := s.fareClassRepo.UpdateSeats(ctx, tx, fc.ID, fc.SeatsAvailable+int(seatsHeld)); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, models.StatusCancelled); err != nil {
			return err
		}
		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyBookingCancelled, result)
	return result, nil
}

func (s *reservationService) GetBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByIDForUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *reservationService) ListBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *reservationService) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookingRepo.ListAll(ctx)
}

func (s *reservationService) publish(key string, booking *models.Booking) {
	// nil publisher = messaging disabled; a failed publish never rolls back
	// an operation that already committed
	if s.publisher != nil {
		_ = s.publisher.Publish(key, booking)
	}
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
