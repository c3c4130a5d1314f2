// File: /models/car.go
package models

import (
	"time"
)

// Car is the single vehicle profile of a driver.
type Car struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex;size:191"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	FuelType  FuelType  `json:"fuel_type" gorm:"not null;size:20"`
	TankSize  float64   `json:"tank_size" gorm:"not null"`          // in litres
	Odometer  float64   `json:"odometer" gorm:"not null;default:0"` // in km
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings holds the driver's accounting preferences. Defaults come from
// DefaultSettings, not column defaults; an explicit zero is stored as zero.
type Settings struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	UserID            string    `json:"user_id" gorm:"not null;uniqueIndex;size:191"`
	TaxRatePercent    float64   `json:"tax_rate_percent" gorm:"not null"`
	WeeklyGoalAmount  float64   `json:"weekly_goal_amount" gorm:"not null"`
	CurrencyCode      string    `json:"currency_code" gorm:"not null;size:3"`
	WeeklyReportEmail bool      `json:"weekly_report_email" gorm:"default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	DefaultTaxRatePercent   = 15
	DefaultWeeklyGoalAmount = 500
	DefaultCurrencyCode     = "AUD"
)

// DefaultSettings returns the settings a new driver starts with
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:           userID,
		TaxRatePercent:   DefaultTaxRatePercent,
		WeeklyGoalAmount: DefaultWeeklyGoalAmount,
		CurrencyCode:     DefaultCurrencyCode,
	}
}
