package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"gigtrack-api/models"
)

type PlatformEarnings struct {
	Platform string  `json:"platform"`
	Earnings float64 `json:"earnings"`
}

type PlatformRate struct {
	Platform   string  `json:"platform"`
	Earnings   float64 `json:"earnings"`
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`
}

// PlatformBreakdown splits business trips by the platform they were worked on.
type PlatformBreakdown struct {
	Earnings   []PlatformEarnings `json:"earnings"`
	Efficiency []PlatformRate     `json:"efficiency"`
}

// BreakdownByPlatform totals earnings per platform in first-seen order, and
// the hourly rate per platform over trips with a recorded duration, best
// paying first. Rates are rounded to cents.
func BreakdownByPlatform(trips []models.TripLog) PlatformBreakdown {
	var b PlatformBreakdown
	earningsIdx := map[string]int{}
	rateIdx := map[string]int{}

	for _, t := range trips {
		if !t.IsBusiness() {
			continue
		}

		if i, ok := earningsIdx[t.Platform]; ok {
			b.Earnings[i].Earnings += t.Earnings
		} else {
			earningsIdx[t.Platform] = len(b.Earnings)
			b.Earnings = append(b.Earnings, PlatformEarnings{Platform: t.Platform, Earnings: t.Earnings})
		}

		if t.DurationHours <= 0 {
			continue
		}
		if i, ok := rateIdx[t.Platform]; ok {
			b.Efficiency[i].Earnings += t.Earnings
			b.Efficiency[i].Hours += t.DurationHours
		} else {
			rateIdx[t.Platform] = len(b.Efficiency)
			b.Efficiency = append(b.Efficiency, PlatformRate{Platform: t.Platform, Earnings: t.Earnings, Hours: t.DurationHours})
		}
	}

	for i := range b.Efficiency {
		p := &b.Efficiency[i]
		p.HourlyRate = roundCents(ratio(p.Earnings, p.Hours))
	}
	sort.SliceStable(b.Efficiency, func(i, j int) bool {
		return b.Efficiency[i].HourlyRate > b.Efficiency[j].HourlyRate
	})

	return b
}

type CostSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CostBreakdown lists the cost components of the period for charting.
// Excluded components are still listed so their size stays visible.
func (m PeriodMetrics) CostBreakdown() []CostSlice {
	return []CostSlice{
		{Name: "business_fuel", Value: m.EstBusinessFuelCost},
		{Name: "personal_fuel", Value: m.EstPersonalFuelCost},
		{Name: "expenses", Value: m.TotalOtherExpensesRaw},
		{Name: "tax", Value: m.EstimatedTax},
	}
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
