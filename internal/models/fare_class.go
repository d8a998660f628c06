package models

import "time"

// Travel class codes.
const (
	ClassFirstAC  = "1A"
	ClassSecondAC = "2A"
	ClassThirdAC  = "3A"
	ClassSleeper  = "SL"
	ClassChairCar = "CC"
	ClassSecond   = "2S"
)

// Quota codes.
const (
	QuotaGeneral       = "GN"
	QuotaTatkal        = "TQ"
	QuotaPremiumTatkal = "PT"
	QuotaLadies        = "LD"
	QuotaHandicapped   = "HP"
)

func ValidClass(code string) bool {
	switch code {
	case ClassFirstAC, ClassSecondAC, ClassThirdAC, ClassSleeper, ClassChairCar, ClassSecond:
		return true
	}
	return false
}

func ValidQuota(code string) bool {
	switch code {
	case QuotaGeneral, QuotaTatkal, QuotaPremiumTatkal, QuotaLadies, QuotaHandicapped:
		return true
	}
	return false
}

// FareClass is the seat pool for one (train, class, quota) tuple. Its
// seats_available column is mutated only inside the reservation engine's
// locked transactions.
type FareClass struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TrainID        uint      `gorm:"not null;uniqueIndex:idx_train_class_quota" json:"train_id"`
	Class          string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_train_class_quota" json:"class"`
	Quota          string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_train_class_quota" json:"quota"`
	SeatsAvailable int       `gorm:"not null" json:"seats_available"`
	Price          float64   `gorm:"not null" json:"price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
