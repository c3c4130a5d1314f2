package metrics

import (
	"math"
	"time"

	"gigtrack-api/models"
)

// GoalStatus is the progress of the current real-world week.
type GoalStatus struct {
	WeekStart             time.Time `json:"week_start"`
	Goal                  float64   `json:"goal"`
	Current               float64   `json:"current"`
	Percent               float64   `json:"percent"`
	WeekBusinessKm        float64   `json:"week_business_km"`
	WeekEstimatedFuel     float64   `json:"week_estimated_fuel"`
	WeekNet               float64   `json:"week_net"`
	WeekProfitPerDistance float64   `json:"week_profit_per_distance"`
}

// WeeklyGoalStatus measures business earnings since Monday of the week
// containing now against weeklyGoalAmount. now is supplied by the caller so
// the result does not depend on whatever window is being viewed, nor on the
// wall clock.
func WeeklyGoalStatus(trips []models.TripLog, weeklyGoalAmount float64, est FuelEstimate, now time.Time) (GoalStatus, error) {
	start := StartOfWeek(now)
	s := GoalStatus{WeekStart: start, Goal: weeklyGoalAmount}

	for _, t := range trips {
		d, err := parseDate("trip", t.ID, t.Date, now.Location())
		if err != nil {
			return GoalStatus{}, err
		}
		if d.Before(start) || !t.IsBusiness() {
			continue
		}
		s.Current += t.Earnings
		s.WeekBusinessKm += t.Km
	}

	if weeklyGoalAmount > 0 {
		s.Percent = math.Min(100, s.Current/weeklyGoalAmount*100)
	}
	s.WeekEstimatedFuel = est.CostFor(s.WeekBusinessKm)
	s.WeekNet = s.Current - s.WeekEstimatedFuel
	s.WeekProfitPerDistance = ratio(s.WeekNet, s.WeekBusinessKm)

	return s, nil
}
