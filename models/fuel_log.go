// File: /models/fuel_log.go
package models

import (
	"time"
)

// FuelLog is a single fuel purchase. Logs are appended or deleted, never edited.
type FuelLog struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	UserID        string    `json:"user_id" gorm:"not null;index;size:191"`
	Date          string    `json:"date" gorm:"not null;index;size:10"` // YYYY-MM-DD
	Odometer      float64   `json:"odometer" gorm:"not null"`
	Litres        float64   `json:"litres" gorm:"not null"`
	PricePerLitre float64   `json:"price_per_litre" gorm:"not null"`
	TotalPrice    float64   `json:"total_price" gorm:"not null"`
	FullTank      bool      `json:"full_tank" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

// FuelTotal is the purchase total of a fill; it is never supplied by clients
func FuelTotal(litres, pricePerLitre float64) float64 {
	return litres * pricePerLitre
}
