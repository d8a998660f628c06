package service

import (
	"context"
	"errors"
	"strings"

	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTrainNotFound        = errors.New("train not found")
	ErrDuplicateTrainNumber = errors.New("train number already exists")
	ErrDuplicateClassQuota  = errors.New("fare class already exists for this train")
	ErrClassQuotaNotFound   = errors.New("fare class not found for this train")
	ErrInvalidSeatCount     = errors.New("seat count must not be negative")
	ErrInvalidPrice         = errors.New("price must be positive")
	ErrInvalidClass         = errors.New("unknown class code")
	ErrInvalidQuota         = errors.New("unknown quota code")
	ErrOversell             = errors.New("seat adjustment would make seats negative")
)

// InventoryService manages trains and their per-(class, quota) seat pools.
// AdjustSeats is the only mutator of seats_available after creation.
type InventoryService interface {
	CreateTrain(ctx context.Context, train *models.Train, classes []models.FareClass) error
	AddFareClass(ctx context.Context, trainID uint, class, quota string, seats int, price float64) (*models.FareClass, error)
	AdjustSeats(ctx context.Context, trainID uint, class, quota string, delta int) (int, error)
	GetTrain(ctx context.Context, id uint) (*models.Train, error)
	ListTrains(ctx context.Context) ([]models.Train, error)
}

type inventoryService struct {
	trainRepo     repository.TrainRepository
	fareClassRepo repository.FareClassRepository
}

func NewInventoryService(trainRepo repository.TrainRepository, fareClassRepo repository.FareClassRepository) InventoryService {
	return &inventoryService{trainRepo: trainRepo, fareClassRepo: fareClassRepo}
}

// CreateTrain inserts the train and any initial fare classes as one unit.
// Class validation happens up front so a bad row cannot leave a train
// behind with half its pools.
func (s *inventoryService) CreateTrain(ctx context.Context, train *models.Train, classes []models.FareClass) error {
	train.TrainNumber = strings.TrimSpace(train.TrainNumber)

	seen := make(map[[2]string]bool, len(classes))
	for _, fc := range classes {
		if err := validateFareClass(fc.Class, fc.Quota, fc.SeatsAvailable, fc.Price); err != nil {
			return err
		}
		key := [2]string{fc.Class, fc.Quota}
		if seen[key] {
			return ErrDuplicateClassQuota
		}
		seen[key] = true
	}

	return s.trainRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.trainRepo.FindByNumber(ctx, train.TrainNumber)
		if err == nil {
			return ErrDuplicateTrainNumber
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.trainRepo.Create(ctx, tx, train); err != nil {
			return err
		}
		for i := range classes {
			classes[i].TrainID = train.ID
			if err := s.fareClassRepo.Create(ctx, tx, &classes[i]); err != nil {
				return err
			}
		}
		train.Classes = classes
		return nil
	})
}

func validateFareClass(class, quota string, seats int, price float64) error {
	if !models.ValidClass(class) {
		return ErrInvalidClass
	}
	if !models.ValidQuota(quota) {
		return ErrInvalidQuota
	}
	if seats < 0 {
		return ErrInvalidSeatCount
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *inventoryService) AddFareClass(ctx context.Context, trainID uint, class, quota string, seats int, price float64) (*models.FareClass, error) {
	if err := validateFareClass(class, quota, seats, price); err != nil {
		return nil, err
	}

	var result *models.FareClass

	err := s.fareClassRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.trainRepo.FindByID(ctx, trainID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainNotFound
			}
			return err
		}

		_, err := s.fareClassRepo.FindByKey(ctx, trainID, class, quota)
		if err == nil {
			return ErrDuplicateClassQuota
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fc := &models.FareClass{
			TrainID:        trainID,
			Class:          class,
			Quota:          quota,
			SeatsAvailable: seats,
			Price:          price,
		}
		if err := s.fareClassRepo.Create(ctx, tx, fc); err != nil {
			return err
		}
		result = fc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustSeats applies delta to the seat pool under a row lock and returns
// the new count. The check and the write happen under the same lock, so
// concurrent adjustments of one key serialize.
func (s *inventoryService) AdjustSeats(ctx context.Context, trainID uint, class, quota string, delta int) (int, error) {
	var newCount int

	err := s.fareClassRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fc, err := s.fareClassRepo.FindByKeyForUpdate(ctx, tx, trainID, class, quota)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassQuotaNotFound
			}
			return err
		}

		if fc.SeatsAvailable+delta < 0 {
			return ErrOversell
		}
		newCount = fc.SeatsAvailable + delta
		return s.fareClassRepo.UpdateSeats(ctx, tx, fc.ID, newCount)
	})
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

func (s *inventoryService) GetTrain(ctx context.Context, id uint) (*models.Train, error) {
	train, err := s.trainRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}
	return train, nil
}

func (s *inventoryService) ListTrains(ctx context.Context) ([]models.Train, error) {
	return s.trainRepo.FindAll(ctx)
}
