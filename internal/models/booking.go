package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// CanTransition reports whether a booking may move from its current status
// to the target one. Legal moves: pending->confirmed, pending->cancelled,
// confirmed->cancelled. Cancelled is terminal.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	}
	return false
}

type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	PNR       string        `gorm:"uniqueIndex;not null" json:"pnr"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	TrainID   uint          `gorm:"not null" json:"train_id"`
	Class     string        `gorm:"type:varchar(2);not null" json:"class"`
	Quota     string        `gorm:"type:varchar(2);not null" json:"quota"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Train      *Train             `gorm:"foreignKey:TrainID" json:"train,omitempty"`
	Passengers []BookingPassenger `gorm:"foreignKey:BookingID" json:"passengers,omitempty"`
}

// BookingPassenger links a booking to one roster passenger. Position keeps
// the order the passengers were submitted in.
type BookingPassenger struct {
	BookingID   uint `gorm:"primaryKey;autoIncrement:false" json:"booking_id"`
	PassengerID uint `gorm:"primaryKey;autoIncrement:false" json:"passenger_id"`
	Position    int  `gorm:"not null" json:"position"`
}

// PassengerIDs returns the referenced passenger ids in submission order.
func (b *Booking) PassengerIDs() []uint {
	ids := make([]uint, len(b.Passengers))
	for i, p := range b.Passengers {
		ids[i] = p.PassengerID
	}
	return ids
}
