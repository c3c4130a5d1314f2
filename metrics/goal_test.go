package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigtrack-api/models"
)

// Wednesday 13 March 2024; the week starts Monday 11 March.
var wednesday = time.Date(2024, time.March, 13, 18, 0, 0, 0, time.UTC)

func weekTrips() []models.TripLog {
	return []models.TripLog{
		business("sun", "2024-03-10", "DoorDash", 50, 2, 500), // previous week
		business("mon", "2024-03-11", "DoorDash", 60, 3, 120),
		business("wed", "2024-03-13", "Uber Eats", 40, 2, 80),
		personal("p", "2024-03-12", 30),
	}
}

func TestWeeklyGoalStatus(t *testing.T) {
	s, err := WeeklyGoalStatus(weekTrips(), 400, flatEstimate, wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), s.WeekStart)
	assert.InDelta(t, 200, s.Current, 1e-9)
	assert.InDelta(t, 50, s.Percent, 1e-9)
	assert.InDelta(t, 100, s.WeekBusinessKm, 1e-9)
	assert.InDelta(t, 10, s.WeekEstimatedFuel, 1e-9)
	assert.InDelta(t, 190, s.WeekNet, 1e-9)
	assert.InDelta(t, 1.9, s.WeekProfitPerDistance, 1e-9)
}

func TestWeeklyGoalStatus_ZeroGoal(t *testing.T) {
	s, err := WeeklyGoalStatus(weekTrips(), 0, flatEstimate, wednesday)
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.Percent)
	assert.InDelta(t, 200, s.Current, 1e-9)
}

func TestWeeklyGoalStatus_ClampsAtHundred(t *testing.T) {
	s, err := WeeklyGoalStatus(weekTrips(), 50, flatEstimate, wednesday)
	require.NoError(t, err)

	assert.Equal(t, 100.0, s.Percent)
}

func TestWeeklyGoalStatus_SundayBelongsToEndingWeek(t *testing.T) {
	sunday := time.Date(2024, time.March, 17, 9, 0, 0, 0, time.UTC)

	s, err := WeeklyGoalStatus(weekTrips(), 400, flatEstimate, sunday)
	require.NoError(t, err)

	assert.Equal(t, 11, s.WeekStart.Day())
	assert.InDelta(t, 200, s.Current, 1e-9)
}

func TestWeeklyGoalStatus_NoTrips(t *testing.T) {
	s, err := WeeklyGoalStatus(nil, 500, flatEstimate, wednesday)
	require.NoError(t, err)

	assert.Zero(t, s.Current)
	assert.Zero(t, s.Percent)
	assert.Zero(t, s.WeekProfitPerDistance)
}

func TestWeeklyGoalStatus_InvalidDate(t *testing.T) {
	trips := append(weekTrips(), business("bad", "13/03/2024", "DoorDash", 1, 1, 1))

	_, err := WeeklyGoalStatus(trips, 500, flatEstimate, wednesday)
	assert.Error(t, err)
}
