package metrics

import (
	"gigtrack-api/models"
)

// Toggles selects which cost components reduce a period's net profit.
type Toggles struct {
	IncludeExternalExpenses bool `json:"include_external_expenses"`
	IncludeTax              bool `json:"include_tax"`
	IncludePersonalFuel     bool `json:"include_personal_fuel"`
}

// DefaultToggles includes every cost component
func DefaultToggles() Toggles {
	return Toggles{
		IncludeExternalExpenses: true,
		IncludeTax:              true,
		IncludePersonalFuel:     true,
	}
}

// PeriodMetrics is the financial summary of one window.
//
// The Est* fuel figures are distance based, using the global FuelEstimate.
// ActualFuelSpend and TotalLitresPurchased are what was bought at the pump
// inside the window. The two are expected to differ and are reported side by
// side.
type PeriodMetrics struct {
	Window  Window  `json:"window"`
	Toggles Toggles `json:"toggles"`

	TotalEarnings      float64 `json:"total_earnings"`
	TotalDurationHours float64 `json:"total_duration_hours"`
	BusinessKm         float64 `json:"business_km"`
	PersonalKm         float64 `json:"personal_km"`

	EstBusinessFuelCost   float64 `json:"est_business_fuel_cost"`
	EstPersonalFuelCost   float64 `json:"est_personal_fuel_cost"`
	FuelCostToUse         float64 `json:"fuel_cost_to_use"`
	TotalOtherExpensesRaw float64 `json:"total_other_expenses_raw"`
	TotalOtherExpenses    float64 `json:"total_other_expenses"`

	NetProfitBeforeTax float64 `json:"net_profit_before_tax"`
	EstimatedTax       float64 `json:"estimated_tax"`
	NetProfitAfterTax  float64 `json:"net_profit_after_tax"`
	NetFinal           float64 `json:"net_final"`
	TotalCostsAndTax   float64 `json:"total_costs_and_tax"`

	ProfitPerDistance float64 `json:"profit_per_distance"`
	HourlyRate        float64 `json:"hourly_rate"`

	ActualFuelSpend      float64 `json:"actual_fuel_spend"`
	TotalLitresPurchased float64 `json:"total_litres_purchased"`

	BusinessTrips int `json:"business_trips"`
	PersonalTrips int `json:"personal_trips"`
	FuelPurchases int `json:"fuel_purchases"`
	Expenses      int `json:"expenses"`
}

// Filtered holds the records of a snapshot that fall inside a window.
type Filtered struct {
	Trips    []models.TripLog
	Fuel     []models.FuelLog
	Expenses []models.ExpenseLog
}

// FilterWindow keeps the records dated inside w. Dates are compared as
// calendar days in the window's location.
func FilterWindow(w Window, snap models.Snapshot) (Filtered, error) {
	loc := w.Start.Location()
	var f Filtered

	for _, t := range snap.TripLogs {
		d, err := parseDate("trip", t.ID, t.Date, loc)
		if err != nil {
			return Filtered{}, err
		}
		if w.Contains(d) {
			f.Trips = append(f.Trips, t)
		}
	}
	for _, l := range snap.FuelLogs {
		d, err := parseDate("fuel", l.ID, l.Date, loc)
		if err != nil {
			return Filtered{}, err
		}
		if w.Contains(d) {
			f.Fuel = append(f.Fuel, l)
		}
	}
	for _, e := range snap.ExpenseLogs {
		d, err := parseDate("expense", e.ID, e.Date, loc)
		if err != nil {
			return Filtered{}, err
		}
		if w.Contains(d) {
			f.Expenses = append(f.Expenses, e)
		}
	}
	return f, nil
}

// AggregatePeriod filters the snapshot into w and summarises it.
func AggregatePeriod(w Window, snap models.Snapshot, toggles Toggles, taxRatePercent float64, est FuelEstimate) (PeriodMetrics, error) {
	f, err := FilterWindow(w, snap)
	if err != nil {
		return PeriodMetrics{}, err
	}
	return Summarize(w, f, toggles, taxRatePercent, est), nil
}

// Summarize computes the period figures from already filtered records.
// Tax is only ever taken from a positive profit.
func Summarize(w Window, f Filtered, toggles Toggles, taxRatePercent float64, est FuelEstimate) PeriodMetrics {
	m := PeriodMetrics{Window: w, Toggles: toggles}

	for _, t := range f.Trips {
		if t.IsBusiness() {
			m.BusinessTrips++
			m.TotalEarnings += t.Earnings
			m.TotalDurationHours += t.DurationHours
			m.BusinessKm += t.Km
		} else {
			m.PersonalTrips++
			m.PersonalKm += t.Km
		}
	}

	m.EstBusinessFuelCost = est.CostFor(m.BusinessKm)
	m.EstPersonalFuelCost = est.CostFor(m.PersonalKm)

	for _, e := range f.Expenses {
		m.TotalOtherExpensesRaw += e.Cost
	}
	m.Expenses = len(f.Expenses)
	if toggles.IncludeExternalExpenses {
		m.TotalOtherExpenses = m.TotalOtherExpensesRaw
	}

	m.FuelCostToUse = m.EstBusinessFuelCost
	if toggles.IncludePersonalFuel {
		m.FuelCostToUse += m.EstPersonalFuelCost
	}

	m.NetProfitBeforeTax = m.TotalEarnings - m.FuelCostToUse - m.TotalOtherExpenses
	if m.NetProfitBeforeTax > 0 {
		m.EstimatedTax = m.NetProfitBeforeTax * taxRatePercent / 100
	}
	m.NetProfitAfterTax = m.NetProfitBeforeTax - m.EstimatedTax

	m.NetFinal = m.NetProfitBeforeTax
	m.TotalCostsAndTax = m.FuelCostToUse + m.TotalOtherExpenses
	if toggles.IncludeTax {
		m.NetFinal = m.NetProfitAfterTax
		m.TotalCostsAndTax += m.EstimatedTax
	}

	m.ProfitPerDistance = ratio(m.NetFinal, m.BusinessKm)
	m.HourlyRate = ratio(m.TotalEarnings, m.TotalDurationHours)

	for _, l := range f.Fuel {
		m.ActualFuelSpend += l.TotalPrice
		m.TotalLitresPurchased += l.Litres
	}
	m.FuelPurchases = len(f.Fuel)

	return m
}
