package repositories

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"gigtrack-api/database"
	"gigtrack-api/models"
)

func newRepo(t *testing.T) *RecordRepository {
	t.Helper()
	db, err := database.Initialize("sqlite", filepath.Join(t.TempDir(), "test.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewRecordRepository(db)
}

func fuelLog(userID string, odometer float64) *models.FuelLog {
	return &models.FuelLog{
		ID:            uuid.New().String(),
		UserID:        userID,
		Date:          "2024-03-01",
		Odometer:      odometer,
		Litres:        40,
		PricePerLitre: 1.5,
		TotalPrice:    60,
		FullTank:      true,
	}
}

func TestAddFuelLog_AdvancesOdometer(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.SaveCar(&models.Car{ID: "car-1", UserID: "u1", Name: "Corolla", FuelType: models.FuelPetrol, TankSize: 50, Odometer: 1000}))

	require.NoError(t, repo.AddFuelLog(fuelLog("u1", 1500)))

	car, err := repo.GetCar("u1")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, car.Odometer)
}

func TestAddFuelLog_RejectsNonIncreasingOdometer(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.SaveCar(&models.Car{ID: "car-1", UserID: "u1", Name: "Corolla", FuelType: models.FuelPetrol, TankSize: 50, Odometer: 1000}))

	for _, odo := range []float64{1000, 900} {
		err := repo.AddFuelLog(fuelLog("u1", odo))
		assert.True(t, errors.Is(err, ErrOdometerNotIncreasing), "odometer %v", odo)
	}

	logs, err := repo.ListFuelLogs("u1")
	require.NoError(t, err)
	assert.Empty(t, logs)

	car, err := repo.GetCar("u1")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, car.Odometer)
}

func TestAddFuelLog_WithoutCar(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.AddFuelLog(fuelLog("u1", 10)))

	_, err := repo.GetCar("u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSettings_CreatesDefaults(t *testing.T) {
	repo := newRepo(t)

	s, err := repo.GetSettings("u1")
	require.NoError(t, err)
	assert.Equal(t, 15.0, s.TaxRatePercent)
	assert.Equal(t, 500.0, s.WeeklyGoalAmount)
	assert.Equal(t, "AUD", s.CurrencyCode)

	s.TaxRatePercent = 30
	s.WeeklyReportEmail = true
	require.NoError(t, repo.SaveSettings(s))

	again, err := repo.GetSettings("u1")
	require.NoError(t, err)
	assert.Equal(t, 30.0, again.TaxRatePercent)
	assert.True(t, again.WeeklyReportEmail)
}

func TestTrips_UpdateAndDelete(t *testing.T) {
	repo := newRepo(t)
	trip := &models.TripLog{ID: "t1", UserID: "u1", Date: "2024-03-01", Type: models.TripBusiness, Platform: "DoorDash", Km: 10, Earnings: 30}
	require.NoError(t, repo.AddTrip(trip))

	trip.Km = 12
	trip.Platform = "Uber Eats"
	require.NoError(t, repo.UpdateTrip(trip))

	got, err := repo.GetTrip("u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Km)
	assert.Equal(t, "Uber Eats", got.Platform)

	// other drivers cannot touch the trip
	assert.ErrorIs(t, repo.DeleteTrip("u2", "t1"), ErrNotFound)
	require.NoError(t, repo.DeleteTrip("u1", "t1"))
	_, err = repo.GetTrip("u1", "t1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshot(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.AddFuelLog(fuelLog("u1", 100)))
	require.NoError(t, repo.AddFuelLog(fuelLog("u1", 600)))
	require.NoError(t, repo.AddTrip(&models.TripLog{ID: "t1", UserID: "u1", Date: "2024-03-01", Type: models.TripBusiness, Km: 5}))
	require.NoError(t, repo.AddTrip(&models.TripLog{ID: "t2", UserID: "u1", Date: "2024-03-05", Type: models.TripBusiness, Km: 5}))
	require.NoError(t, repo.AddExpense(&models.ExpenseLog{ID: "e1", UserID: "u1", Date: "2024-03-01", Category: models.ExpenseOther, Cost: 9}))
	require.NoError(t, repo.AddExpense(&models.ExpenseLog{ID: "e2", UserID: "u2", Date: "2024-03-01", Category: models.ExpenseOther, Cost: 9}))

	snap, err := repo.Snapshot("u1")
	require.NoError(t, err)

	assert.Nil(t, snap.Car)
	assert.Equal(t, "u1", snap.Settings.UserID)
	require.Len(t, snap.FuelLogs, 2)
	assert.Equal(t, 600.0, snap.FuelLogs[0].Odometer)
	require.Len(t, snap.TripLogs, 2)
	assert.Equal(t, "t2", snap.TripLogs[0].ID)
	assert.Len(t, snap.ExpenseLogs, 1)
}

func TestRestore_OnlyPresentParts(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.AddTrip(&models.TripLog{ID: "keep", UserID: "u1", Date: "2024-03-01", Type: models.TripBusiness}))
	require.NoError(t, repo.AddExpense(&models.ExpenseLog{ID: "old", UserID: "u1", Date: "2024-03-01", Category: models.ExpenseOther, Cost: 1}))

	expenses := []models.ExpenseLog{
		{ID: "new1", UserID: "u1", Date: "2024-04-01", Category: models.ExpenseRepairs, Cost: 100},
		{ID: "new2", UserID: "u1", Date: "2024-04-02", Category: models.ExpenseCleaning, Cost: 20},
	}
	require.NoError(t, repo.Restore("u1", RestoreSet{
		Car:         &models.Car{ID: "c", UserID: "u1", Name: "Prius", FuelType: models.FuelHybrid, TankSize: 43, Odometer: 5000},
		ExpenseLogs: &expenses,
	}))

	snap, err := repo.Snapshot("u1")
	require.NoError(t, err)
	require.NotNil(t, snap.Car)
	assert.Equal(t, "Prius", snap.Car.Name)
	require.Len(t, snap.TripLogs, 1)
	assert.Equal(t, "keep", snap.TripLogs[0].ID)
	require.Len(t, snap.ExpenseLogs, 2)
	assert.Equal(t, "new2", snap.ExpenseLogs[0].ID)
}

func TestUsersWithWeeklyReport(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.db.Create(&models.User{ID: "u1", Name: "A", Email: "a@example.com", Password: "x"}).Error)
	require.NoError(t, repo.db.Create(&models.User{ID: "u2", Name: "B", Email: "b@example.com", Password: "x"}).Error)

	s, err := repo.GetSettings("u2")
	require.NoError(t, err)
	s.WeeklyReportEmail = true
	require.NoError(t, repo.SaveSettings(s))
	_, err = repo.GetSettings("u1")
	require.NoError(t, err)

	users, err := repo.UsersWithWeeklyReport()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].ID)
}
