package utils

import (
	"regexp"
	"time"

	"gigtrack-api/models"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// IsValidDate accepts calendar dates in YYYY-MM-DD form only
func IsValidDate(date string) bool {
	_, err := time.Parse(models.DateLayout, date)
	return err == nil
}

func IsValidTaxRate(rate float64) bool {
	return rate >= 0 && rate <= 100
}

func IsValidCurrency(code string) bool {
	return currencyRegex.MatchString(code)
}
