package service

import (
	"context"
	"strings"

	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/repository"
)

// AvailabilityService is the read side of the inventory: route + date search
// over trains and their fare classes.
type AvailabilityService interface {
	Search(ctx context.Context, origin, destination, date string) ([]models.Train, error)
}

type availabilityService struct {
	trainRepo repository.TrainRepository
}

func NewAvailabilityService(trainRepo repository.TrainRepository) AvailabilityService {
	return &availabilityService{trainRepo: trainRepo}
}

// Search trims and lowercases origin/destination for case-insensitive
// substring matching and matches the date exactly. No match is a valid
// empty result, never an error. Trains come back in id order with their
// fare classes in insertion order.
func (s *availabilityService) Search(ctx context.Context, origin, destination, date string) ([]models.Train, error) {
	origin = strings.ToLower(strings.TrimSpace(origin))
	destination = strings.ToLower(strings.TrimSpace(destination))
	date = strings.TrimSpace(date)

	trains, err := s.trainRepo.Search(ctx, origin, destination, date)
	if err != nil {
		return nil, err
	}
	if trains == nil {
		trains = []models.Train{}
	}
	return trains, nil
}
