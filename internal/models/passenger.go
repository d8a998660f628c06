package models

import "time"

// Gender values accepted for passengers.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Passenger is a saved roster entry owned by one user. Bookings reference
// passengers by id; they are never embedded.
type Passenger struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Name            string    `gorm:"not null" json:"name"`
	Age             int       `gorm:"not null" json:"age"`
	Gender          string    `gorm:"type:varchar(10);not null" json:"gender"`
	BerthPreference *string   `json:"berth_preference,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
