package dto

import (
	"time"

	"github.com/railbook/railbook/internal/models"
)

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type FareClassInfo struct {
	Class          string  `json:"class"`
	Quota          string  `json:"quota"`
	SeatsAvailable int     `json:"seats_available"`
	Fare           float64 `json:"fare"`
}

// TrainAvailability is one search result: a train with all of its fare
// classes grouped into a single record.
type TrainAvailability struct {
	ID            uint            `json:"id"`
	TrainNumber   string          `json:"train_number"`
	TrainName     string          `json:"train_name"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	Date          string          `json:"date"`
	DepartureTime string          `json:"departure_time,omitempty"`
	ArrivalTime   string          `json:"arrival_time,omitempty"`
	Classes       []FareClassInfo `json:"classes"`
}

type FareClassResponse struct {
	ID             uint    `json:"id"`
	TrainID        uint    `json:"train_id"`
	Class          string  `json:"class"`
	Quota          string  `json:"quota"`
	SeatsAvailable int     `json:"seats_available"`
	Price          float64 `json:"price"`
}

type SeatAdjustmentResponse struct {
	TrainID        uint   `json:"train_id"`
	Class          string `json:"class"`
	Quota          string `json:"quota"`
	SeatsAvailable int    `json:"seats_available"`
}

type BookingResponse struct {
	ID           uint                 `json:"id"`
	PNR          string               `json:"pnr"`
	UserID       uint                 `json:"user_id"`
	TrainID      uint                 `json:"train_id"`
	Class        string               `json:"class"`
	Quota        string               `json:"quota"`
	Status       models.BookingStatus `json:"status"`
	PassengerIDs []uint               `json:"passenger_ids"`
	CreatedAt    time.Time            `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		PNR:          b.PNR,
		UserID:       b.UserID,
		TrainID:      b.TrainID,
		Class:        b.Class,
		Quota:        b.Quota,
		Status:       b.Status,
		PassengerIDs: b.PassengerIDs(),
		CreatedAt:    b.CreatedAt,
	}
}

func ToFareClassResponse(fc *models.FareClass) FareClassResponse {
	return FareClassResponse{
		ID:             fc.ID,
		TrainID:        fc.TrainID,
		Class:          fc.Class,
		Quota:          fc.Quota,
		SeatsAvailable: fc.SeatsAvailable,
		Price:          fc.Price,
	}
}

func ToTrainAvailability(t *models.Train) TrainAvailability {
	classes := make([]FareClassInfo, len(t.Classes))
	for i, fc := range t.Classes {
		classes[i] = FareClassInfo{
			Class:          fc.Class,
			Quota:          fc.Quota,
			SeatsAvailable: fc.SeatsAvailable,
			Fare:           fc.Price,
		}
	}
	return TrainAvailability{
		ID:            t.ID,
		TrainNumber:   t.TrainNumber,
		TrainName:     t.TrainName,
		Origin:        t.Origin,
		Destination:   t.Destination,
		Date:          t.Date,
		DepartureTime: t.DepartureTime,
		ArrivalTime:   t.ArrivalTime,
		Classes:       classes,
	}
}
