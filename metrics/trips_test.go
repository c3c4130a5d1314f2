package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigtrack-api/models"
)

func TestEnrichTrips(t *testing.T) {
	trips := []models.TripLog{
		business("old", "2024-03-01", "DoorDash", 100, 4, 200),
		personal("mid", "2024-03-05", 40),
		business("new", "2024-03-09", "Uber Eats", 20, 0, 35),
	}

	out, err := EnrichTrips(trips, flatEstimate)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []string{"new", "mid", "old"}, []string{out[0].ID, out[1].ID, out[2].ID})

	assert.InDelta(t, 2, out[0].EstimatedFuelCost, 1e-9)
	assert.InDelta(t, 33, out[0].NetProfit, 1e-9)
	assert.Equal(t, 0.0, out[0].HourlyRate, "no duration recorded")

	assert.InDelta(t, 4, out[1].EstimatedFuelCost, 1e-9)
	assert.InDelta(t, -4, out[1].NetProfit, 1e-9, "personal trip costs its fuel")
	assert.Equal(t, 0.0, out[1].HourlyRate)

	assert.InDelta(t, 190, out[2].NetProfit, 1e-9)
	assert.InDelta(t, 50, out[2].HourlyRate, 1e-9)
}

func TestEnrichTrips_StableForSameDay(t *testing.T) {
	trips := []models.TripLog{
		business("a", "2024-03-01", "DoorDash", 1, 1, 1),
		business("b", "2024-03-01", "DoorDash", 1, 1, 1),
	}

	out, err := EnrichTrips(trips, FuelEstimate{})
	require.NoError(t, err)

	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, 1.0, out[0].NetProfit)
}

func TestEnrichTrips_InvalidDate(t *testing.T) {
	_, err := EnrichTrips([]models.TripLog{business("x", "yesterday", "DoorDash", 1, 1, 1)}, flatEstimate)

	var invalid *InvalidRecordError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "trip", invalid.Kind)
}

func TestEnrichTrips_Empty(t *testing.T) {
	out, err := EnrichTrips(nil, flatEstimate)
	require.NoError(t, err)
	assert.Empty(t, out)
}
