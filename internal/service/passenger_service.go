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
	ErrPassengerNotFound   = errors.New("passenger not found")
	ErrInvalidPassengerAge = errors.New("passenger age must be positive")
	ErrInvalidGender       = errors.New("gender must be Male, Female or Other")
	ErrEmptyPassengerName  = errors.New("passenger name is required")
)

type PassengerService interface {
	AddPassenger(ctx context.Context, userID uint, name string, age int, gender string, berthPref *string) (*models.Passenger, error)
	GetPassenger(ctx context.Context, id, userID uint) (*models.Passenger, error)
	ListPassengers(ctx context.Context, userID uint) ([]models.Passenger, error)
}

type passengerService struct {
	passengerRepo repository.PassengerRepository
}

func NewPassengerService(passengerRepo repository.PassengerRepository) PassengerService {
	return &passengerService{passengerRepo: passengerRepo}
}

func (s *passengerService) AddPassenger(ctx context.Context, userID uint, name string, age int, gender string, berthPref *string) (*models.Passenger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPassengerName
	}
	if age <= 0 {
		return nil, ErrInvalidPassengerAge
	}
	if !models.ValidGender(gender) {
		return nil, ErrInvalidGender
	}

	passenger := &models.Passenger{
		UserID:          userID,
		Name:            name,
		Age:             age,
		Gender:          gender,
		BerthPreference: berthPref,
	}
	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

func (s *passengerService) GetPassenger(ctx context.Context, id, userID uint) (*models.Passenger, error) {
	p, err := s.passengerRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *passengerService) ListPassengers(ctx context.Context, userID uint) ([]models.Passenger, error) {
	passengers, err := s.passengerRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if passengers == nil {
		passengers = []models.Passenger{}
	}
	return passengers, nil
}
