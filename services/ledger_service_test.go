package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"gigtrack-api/database"
	"gigtrack-api/models"
	"gigtrack-api/repositories"
)

func newRecords(t *testing.T) *repositories.RecordRepository {
	t.Helper()
	db, err := database.Initialize("sqlite", filepath.Join(t.TempDir(), "services.db"), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return repositories.NewRecordRepository(db)
}

func TestAddFuel_DerivesTotal(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	log, err := ledger.AddFuel("u1", models.FuelLog{
		Date: "2024-03-01", Odometer: 1000, Litres: 40, PricePerLitre: 1.5, TotalPrice: 999, FullTank: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, log.ID)
	assert.Equal(t, "u1", log.UserID)
	assert.Equal(t, 60.0, log.TotalPrice)
}

func TestAddFuel_Validation(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	cases := map[string]models.FuelLog{
		"bad date":     {Date: "01/03/2024", Odometer: 10, Litres: 40, PricePerLitre: 1.5},
		"zero litres":  {Date: "2024-03-01", Odometer: 10, Litres: 0, PricePerLitre: 1.5},
		"zero price":   {Date: "2024-03-01", Odometer: 10, Litres: 40, PricePerLitre: 0},
		"negative odo": {Date: "2024-03-01", Odometer: -1, Litres: 40, PricePerLitre: 1.5},
	}
	for name, log := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.AddFuel("u1", log)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAddFuel_OdometerMustIncrease(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))
	_, err := ledger.SaveCar("u1", models.Car{Name: "Prius", FuelType: models.FuelHybrid, TankSize: 43, Odometer: 5000})
	require.NoError(t, err)

	_, err = ledger.AddFuel("u1", models.FuelLog{Date: "2024-03-01", Odometer: 4999, Litres: 30, PricePerLitre: 2})
	assert.True(t, errors.Is(err, repositories.ErrOdometerNotIncreasing))

	_, err = ledger.AddFuel("u1", models.FuelLog{Date: "2024-03-01", Odometer: 5400, Litres: 30, PricePerLitre: 2})
	require.NoError(t, err)

	car, err := ledger.GetCar("u1")
	require.NoError(t, err)
	assert.Equal(t, 5400.0, car.Odometer)
}

func TestSaveCar_Validation(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	_, err := ledger.SaveCar("u1", models.Car{Name: " ", FuelType: models.FuelPetrol, TankSize: 40})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ledger.SaveCar("u1", models.Car{Name: "Golf", FuelType: "Steam", TankSize: 40})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ledger.SaveCar("u1", models.Car{Name: "Golf", FuelType: models.FuelDiesel, TankSize: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveSettings_NormalisesCurrency(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	saved, err := ledger.SaveSettings("u1", models.Settings{TaxRatePercent: 20, WeeklyGoalAmount: 800, CurrencyCode: " nzd "})
	require.NoError(t, err)
	assert.Equal(t, "NZD", saved.CurrencyCode)

	got, err := ledger.GetSettings("u1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.TaxRatePercent)
	assert.Equal(t, 800.0, got.WeeklyGoalAmount)
	assert.Equal(t, "NZD", got.CurrencyCode)

	_, err = ledger.SaveSettings("u1", models.Settings{TaxRatePercent: 120})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ledger.SaveSettings("u1", models.Settings{TaxRatePercent: 10, WeeklyGoalAmount: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ledger.SaveSettings("u1", models.Settings{TaxRatePercent: 10, CurrencyCode: "DOLLARS"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddTrip_PersonalHasNoEarnings(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	trip, err := ledger.AddTrip("u1", models.TripLog{Date: "2024-03-04", Type: models.TripPersonal, Km: 12, Earnings: 40})
	require.NoError(t, err)
	assert.Zero(t, trip.Earnings)

	trips, err := ledger.ListTrips("u1")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Zero(t, trips[0].Earnings)
}

func TestAddTrip_Validation(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	cases := map[string]models.TripLog{
		"bad date":          {Date: "2024-3-4", Type: models.TripBusiness},
		"unknown type":      {Date: "2024-03-04", Type: "Commute"},
		"negative km":       {Date: "2024-03-04", Type: models.TripBusiness, Km: -1},
		"negative duration": {Date: "2024-03-04", Type: models.TripBusiness, DurationHours: -1},
		"negative earnings": {Date: "2024-03-04", Type: models.TripBusiness, Earnings: -5},
	}
	for name, trip := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.AddTrip("u1", trip)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateTrip(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))
	trip, err := ledger.AddTrip("u1", models.TripLog{Date: "2024-03-04", Type: models.TripBusiness, Platform: "Uber", Km: 30, DurationHours: 1.5, Earnings: 55})
	require.NoError(t, err)

	updated, err := ledger.UpdateTrip("u1", trip.ID, models.TripLog{Date: "2024-03-05", Type: models.TripPersonal, Km: 32, Earnings: 55})
	require.NoError(t, err)
	assert.Equal(t, trip.ID, updated.ID)
	assert.Zero(t, updated.Earnings)

	trips, err := ledger.ListTrips("u1")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "2024-03-05", trips[0].Date)
	assert.Equal(t, models.TripPersonal, trips[0].Type)
	assert.Zero(t, trips[0].Earnings)

	_, err = ledger.UpdateTrip("u2", trip.ID, models.TripLog{Date: "2024-03-05", Type: models.TripBusiness})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestExpenses(t *testing.T) {
	ledger := NewLedgerService(newRecords(t))

	_, err := ledger.AddExpense("u1", models.ExpenseLog{Date: "2024-03-04", Category: "Snacks", Cost: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ledger.AddExpense("u1", models.ExpenseLog{Date: "2024-03-04", Category: models.ExpenseCleaning, Cost: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	e, err := ledger.AddExpense("u1", models.ExpenseLog{Date: "2024-03-04", Category: models.ExpenseCleaning, Cost: 25, Note: "  car wash "})
	require.NoError(t, err)
	assert.Equal(t, "car wash", e.Note)

	assert.ErrorIs(t, ledger.DeleteExpense("u2", e.ID), repositories.ErrNotFound)
	require.NoError(t, ledger.DeleteExpense("u1", e.ID))

	expenses, err := ledger.ListExpenses("u1")
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
