package models

import "time"

type Train struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TrainNumber   string `gorm:"uniqueIndex;not null" json:"train_number"`
	TrainName     string `gorm:"not null" json:"train_name"`
	Origin        string `gorm:"not null" json:"origin"`
	Destination   string `gorm:"not null" json:"destination"`
	// Service date as YYYY-MM-DD; search matches it exactly as text.
	Date          string    `gorm:"type:varchar(10);not null" json:"date"`
	DepartureTime string    `gorm:"type:varchar(5)" json:"departure_time"`
	ArrivalTime   string    `gorm:"type:varchar(5)" json:"arrival_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Classes []FareClass `gorm:"foreignKey:TrainID" json:"classes,omitempty"`
}
