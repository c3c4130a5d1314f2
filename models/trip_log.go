// File: /models/trip_log.go
package models

import (
	"time"
)

type TripLog struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	UserID        string    `json:"user_id" gorm:"not null;index;size:191"`
	Date          string    `json:"date" gorm:"not null;index;size:10"` // YYYY-MM-DD
	Type          TripType  `json:"type" gorm:"not null;size:20"`
	Platform      string    `json:"platform" gorm:"size:100"`
	Km            float64   `json:"km" gorm:"not null;default:0"`
	DurationHours float64   `json:"duration_hours" gorm:"default:0"`
	Earnings      float64   `json:"earnings" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsBusiness reports whether the trip counts toward earnings. Anything not
// explicitly Personal is treated as business.
func (t TripLog) IsBusiness() bool {
	return t.Type != TripPersonal
}

// Normalize forces the earnings of a personal trip to zero
func (t TripLog) Normalize() TripLog {
	if t.Type == TripPersonal {
		t.Earnings = 0
	}
	return t
}
