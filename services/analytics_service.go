package services

import (
	"fmt"
	"time"

	"gigtrack-api/metrics"
	"gigtrack-api/models"
	"gigtrack-api/repositories"
)

// AnalyticsService loads a driver's snapshot and hands it to the metrics
// engine. The clock and the calendar location are injected so every result
// is reproducible.
type AnalyticsService struct {
	records *repositories.RecordRepository
	cache   *metrics.Cache
	loc     *time.Location
	now     func() time.Time
}

func NewAnalyticsService(records *repositories.RecordRepository, loc *time.Location, now func() time.Time) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		records: records,
		cache:   metrics.NewCache(256),
		loc:     loc,
		now:     now,
	}
}

// Today is the current instant in the configured location
func (s *AnalyticsService) Today() time.Time {
	return s.now().In(s.loc)
}

// ParseAnchor reads a YYYY-MM-DD anchor in the configured location. An empty
// string means today.
func (s *AnalyticsService) ParseAnchor(raw string) (time.Time, error) {
	if raw == "" {
		return s.Today(), nil
	}
	t, err := time.ParseInLocation(models.DateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, invalid("date must be YYYY-MM-DD")
	}
	return t, nil
}

func (s *AnalyticsService) FuelEfficiency(userID string) (metrics.FuelEstimate, error) {
	logs, err := s.records.ListFuelLogs(userID)
	if err != nil {
		return metrics.FuelEstimate{}, fmt.Errorf("load fuel logs: %w", err)
	}
	return metrics.EstimateFuelEfficiency(logs), nil
}

type PeriodRequest struct {
	Granularity metrics.Granularity
	Anchor      time.Time
	Toggles     metrics.Toggles
}

// PeriodReport is everything the analytics screen shows for one window.
type PeriodReport struct {
	Metrics      metrics.PeriodMetrics     `json:"metrics"`
	FuelEstimate metrics.FuelEstimate      `json:"fuel_estimate"`
	Platforms    metrics.PlatformBreakdown `json:"platforms"`
	Costs        []metrics.CostSlice       `json:"costs"`
	Previous     string                    `json:"previous"`
	Next         string                    `json:"next"`
}

func (s *AnalyticsService) Period(userID string, req PeriodRequest) (*PeriodReport, error) {
	snap, err := s.records.Snapshot(userID)
	if err != nil {
		return nil, err
	}

	anchor := req.Anchor
	if anchor.IsZero() {
		anchor = s.Today()
	}
	anchor = anchor.In(s.loc)
	window := metrics.ResolveWindow(req.Granularity, anchor)
	estimate := metrics.EstimateFuelEfficiency(snap.FuelLogs)

	m, err := s.cache.AggregatePeriod(window, snap, req.Toggles, snap.Settings.TaxRatePercent, estimate)
	if err != nil {
		return nil, err
	}

	filtered, err := metrics.FilterWindow(window, snap)
	if err != nil {
		return nil, err
	}

	return &PeriodReport{
		Metrics:      m,
		FuelEstimate: estimate,
		Platforms:    metrics.BreakdownByPlatform(filtered.Trips),
		Costs:        m.CostBreakdown(),
		Previous:     metrics.StepWindow(window.Granularity, anchor, -1).Format(models.DateLayout),
		Next:         metrics.StepWindow(window.Granularity, anchor, 1).Format(models.DateLayout),
	}, nil
}

// Navigate steps the anchor and resolves the window it lands in
func (s *AnalyticsService) Navigate(g metrics.Granularity, anchor time.Time, direction int) (time.Time, metrics.Window) {
	next := metrics.StepWindow(g, anchor.In(s.loc), direction)
	return next, metrics.ResolveWindow(g, next)
}

func (s *AnalyticsService) Trips(userID string) ([]metrics.EnrichedTrip, error) {
	snap, err := s.records.Snapshot(userID)
	if err != nil {
		return nil, err
	}
	return metrics.EnrichTrips(snap.TripLogs, metrics.EstimateFuelEfficiency(snap.FuelLogs))
}

// WeeklyDigest is the weekly goal together with what is needed to present it.
type WeeklyDigest struct {
	Status   metrics.GoalStatus
	Settings models.Settings
	Estimate metrics.FuelEstimate
}

func (s *AnalyticsService) WeeklyDigest(userID string) (*WeeklyDigest, error) {
	snap, err := s.records.Snapshot(userID)
	if err != nil {
		return nil, err
	}

	estimate := metrics.EstimateFuelEfficiency(snap.FuelLogs)
	status, err := metrics.WeeklyGoalStatus(snap.TripLogs, snap.Settings.WeeklyGoalAmount, estimate, s.Today())
	if err != nil {
		return nil, err
	}
	return &WeeklyDigest{Status: status, Settings: snap.Settings, Estimate: estimate}, nil
}

func (s *AnalyticsService) WeeklyGoal(userID string) (*metrics.GoalStatus, error) {
	digest, err := s.WeeklyDigest(userID)
	if err != nil {
		return nil, err
	}
	return &digest.Status, nil
}
