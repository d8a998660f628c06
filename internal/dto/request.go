package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AddPassengerRequest struct {
	Name            string  `json:"name" validate:"required"`
	Age             int     `json:"age" validate:"required,gt=0"`
	Gender          string  `json:"gender" validate:"required,oneof=Male Female Other"`
	BerthPreference *string `json:"berth_preference,omitempty"`
}

type AddFareClassRequest struct {
	Class          string  `json:"class" validate:"required"`
	Quota          string  `json:"quota" validate:"required"`
	SeatsAvailable int     `json:"seats_available" validate:"gte=0"`
	Price          float64 `json:"price" validate:"gt=0"`
}

type CreateTrainRequest struct {
	TrainNumber   string `json:"train_number" validate:"required"`
	TrainName     string `json:"train_name" validate:"required"`
	Origin        string `json:"origin" validate:"required"`
	Destination   string `json:"destination" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	DepartureTime string `json:"departure_time" validate:"omitempty,datetime=15:04"`
	ArrivalTime   string `json:"arrival_time" validate:"omitempty,datetime=15:04"`
	// Optional initial seat pools, created together with the train.
	Classes []AddFareClassRequest `json:"classes" validate:"omitempty,dive"`
}

type AdjustSeatsRequest struct {
	Class string `json:"class" validate:"required"`
	Quota string `json:"quota" validate:"required"`
	Delta int    `json:"delta" validate:"required"`
}

type CreateBookingRequest struct {
	TrainID      uint   `json:"train_id" validate:"required"`
	PassengerIDs []uint `json:"passenger_ids" validate:"required,min=1"`
	Class        string `json:"class" validate:"required"`
	Quota        string `json:"quota" validate:"required"`
}
