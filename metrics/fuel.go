package metrics

import (
	"sort"

	"gigtrack-api/models"
)

// DefaultEfficiency is the km per litre assumed when the fuel history has no
// pair of consecutive full-tank fills to measure from.
const DefaultEfficiency = 10.0

// FuelEstimate is the global fuel figure shared by every other calculation.
// It is never scoped to a reporting window.
type FuelEstimate struct {
	AvgCostPerDistance float64 `json:"avg_cost_per_distance"`
	AvgEfficiency      float64 `json:"avg_efficiency"`
	IsEstimate         bool    `json:"is_estimate"`
}

// EstimateFuelEfficiency derives cost per km and km per litre from the fuel
// purchase history.
//
// Logs are ordered by odometer, highest first, and walked in consecutive
// pairs. A pair is measured only when both fills were full tanks and the
// odometer moved forward between them; the later fill's litres and price are
// what it took to cover that distance. Without any measurable pair the latest
// fill's price is spread over DefaultEfficiency and the result is flagged as
// an estimate. An empty history yields the zero value, which is not flagged.
func EstimateFuelEfficiency(logs []models.FuelLog) FuelEstimate {
	if len(logs) == 0 {
		return FuelEstimate{}
	}

	sorted := make([]models.FuelLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Odometer > sorted[j].Odometer
	})

	var totalDistance, totalFuelCost, totalLitres float64
	for i := 0; i < len(sorted)-1; i++ {
		current, previous := sorted[i], sorted[i+1]
		if !current.FullTank || !previous.FullTank {
			continue
		}
		delta := current.Odometer - previous.Odometer
		if delta <= 0 {
			continue
		}
		totalDistance += delta
		totalFuelCost += current.TotalPrice
		totalLitres += current.Litres
	}

	if totalDistance > 0 {
		return FuelEstimate{
			AvgCostPerDistance: totalFuelCost / totalDistance,
			AvgEfficiency:      ratio(totalDistance, totalLitres),
			IsEstimate:         false,
		}
	}

	latest := sorted[0]
	return FuelEstimate{
		AvgCostPerDistance: latest.PricePerLitre / DefaultEfficiency,
		AvgEfficiency:      DefaultEfficiency,
		IsEstimate:         true,
	}
}

// CostFor is the estimated fuel cost of driving km
func (e FuelEstimate) CostFor(km float64) float64 {
	return km * e.AvgCostPerDistance
}
