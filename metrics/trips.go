package metrics

import (
	"sort"
	"time"

	"gigtrack-api/models"
)

// EnrichedTrip is a trip annotated with its estimated profitability.
type EnrichedTrip struct {
	models.TripLog
	EstimatedFuelCost float64 `json:"estimated_fuel_cost"`
	NetProfit         float64 `json:"net_profit"`
	HourlyRate        float64 `json:"hourly_rate"`
}

// EnrichTrips annotates every trip, newest first, using the global estimate.
// Personal trips go through the same arithmetic; their earnings are zero so
// the net profit is the negated fuel cost.
func EnrichTrips(trips []models.TripLog, est FuelEstimate) ([]EnrichedTrip, error) {
	dates := make([]time.Time, len(trips))
	out := make([]EnrichedTrip, len(trips))

	for i, t := range trips {
		d, err := parseDate("trip", t.ID, t.Date, time.UTC)
		if err != nil {
			return nil, err
		}
		dates[i] = d

		fuel := est.CostFor(t.Km)
		var hourly float64
		if t.DurationHours > 0 && t.Earnings > 0 {
			hourly = t.Earnings / t.DurationHours
		}
		out[i] = EnrichedTrip{
			TripLog:           t,
			EstimatedFuelCost: fuel,
			NetProfit:         t.Earnings - fuel,
			HourlyRate:        hourly,
		}
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dates[order[a]].After(dates[order[b]])
	})

	sorted := make([]EnrichedTrip, len(out))
	for i, idx := range order {
		sorted[i] = out[idx]
	}
	return sorted, nil
}
