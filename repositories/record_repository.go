package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gigtrack-api/models"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrOdometerNotIncreasing is returned when a fuel log does not move the
	// car's odometer forward. The log is refused, never clamped.
	ErrOdometerNotIncreasing = errors.New("odometer must be higher than the previous reading")
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Car and settings

// GetCar retrieves the driver's car profile
func (r *RecordRepository) GetCar(userID string) (*models.Car, error) {
	var car models.Car
	if err := r.db.Where("user_id = ?", userID).First(&car).Error; err != nil {
		return nil, notFound(err)
	}
	return &car, nil
}

// SaveCar creates the car profile or updates the existing one in place
func (r *RecordRepository) SaveCar(car *models.Car) error {
	var existing models.Car
	err := r.db.Where("user_id = ?", car.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(car).Error
		}
		return err
	}

	car.ID = existing.ID
	car.CreatedAt = existing.CreatedAt
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"name":      car.Name,
		"fuel_type": car.FuelType,
		"tank_size": car.TankSize,
		"odometer":  car.Odometer,
	}).Error
}

// GetSettings returns the driver's settings, creating the defaults on first use
func (r *RecordRepository) GetSettings(userID string) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.DefaultSettings(userID)
	if err := r.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *RecordRepository) SaveSettings(settings *models.Settings) error {
	existing, err := r.GetSettings(settings.UserID)
	if err != nil {
		return err
	}

	settings.ID = existing.ID
	return r.db.Model(existing).Updates(map[string]interface{}{
		"tax_rate_percent":    settings.TaxRatePercent,
		"weekly_goal_amount":  settings.WeeklyGoalAmount,
		"currency_code":       settings.CurrencyCode,
		"weekly_report_email": settings.WeeklyReportEmail,
	}).Error
}

// Fuel logs

// AddFuelLog stores a fill and advances the car's odometer to it. Both happen
// in one transaction so a refused fill leaves the car untouched.
func (r *RecordRepository) AddFuelLog(log *models.FuelLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		err := tx.Where("user_id = ?", log.UserID).First(&car).Error
		hasCar := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if hasCar && log.Odometer <= car.Odometer {
			return fmt.Errorf("%w: %.0f <= %.0f", ErrOdometerNotIncreasing, log.Odometer, car.Odometer)
		}

		if err := tx.Create(log).Error; err != nil {
			return err
		}

		if hasCar {
			return tx.Model(&car).Update("odometer", log.Odometer).Error
		}
		return nil
	})
}

func (r *RecordRepository) ListFuelLogs(userID string) ([]models.FuelLog, error) {
	var logs []models.FuelLog
	err := r.db.Where("user_id = ?", userID).Order("odometer DESC").Find(&logs).Error
	return logs, err
}

func (r *RecordRepository) DeleteFuelLog(userID, id string) error {
	return r.deleteOwned(&models.FuelLog{}, userID, id)
}

// Trip logs

func (r *RecordRepository) AddTrip(trip *models.TripLog) error {
	return r.db.Create(trip).Error
}

func (r *RecordRepository) GetTrip(userID, id string) (*models.TripLog, error) {
	var trip models.TripLog
	if err := r.db.First(&trip, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &trip, nil
}

// UpdateTrip overwrites every editable field of an existing trip
func (r *RecordRepository) UpdateTrip(trip *models.TripLog) error {
	existing, err := r.GetTrip(trip.UserID, trip.ID)
	if err != nil {
		return err
	}

	trip.CreatedAt = existing.CreatedAt
	return r.db.Model(existing).Updates(map[string]interface{}{
		"date":           trip.Date,
		"type":           trip.Type,
		"platform":       trip.Platform,
		"km":             trip.Km,
		"duration_hours": trip.DurationHours,
		"earnings":       trip.Earnings,
	}).Error
}

func (r *RecordRepository) ListTrips(userID string) ([]models.TripLog, error) {
	var trips []models.TripLog
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Order("created_at DESC").Find(&trips).Error
	return trips, err
}

func (r *RecordRepository) DeleteTrip(userID, id string) error {
	return r.deleteOwned(&models.TripLog{}, userID, id)
}

// Expense logs

func (r *RecordRepository) AddExpense(expense *models.ExpenseLog) error {
	return r.db.Create(expense).Error
}

func (r *RecordRepository) ListExpenses(userID string) ([]models.ExpenseLog, error) {
	var expenses []models.ExpenseLog
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *RecordRepository) DeleteExpense(userID, id string) error {
	return r.deleteOwned(&models.ExpenseLog{}, userID, id)
}

func (r *RecordRepository) deleteOwned(model interface{}, userID, id string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Snapshot loads every record of a driver. The returned value is detached from
// the database and is safe to hand to the metrics engine.
func (r *RecordRepository) Snapshot(userID string) (models.Snapshot, error) {
	var snap models.Snapshot

	car, err := r.GetCar(userID)
	switch {
	case err == nil:
		snap.Car = car
	case !errors.Is(err, ErrNotFound):
		return snap, fmt.Errorf("load car: %w", err)
	}

	settings, err := r.GetSettings(userID)
	if err != nil {
		return snap, fmt.Errorf("load settings: %w", err)
	}
	snap.Settings = *settings

	if snap.FuelLogs, err = r.ListFuelLogs(userID); err != nil {
		return snap, fmt.Errorf("load fuel logs: %w", err)
	}
	if snap.TripLogs, err = r.ListTrips(userID); err != nil {
		return snap, fmt.Errorf("load trips: %w", err)
	}
	if snap.ExpenseLogs, err = r.ListExpenses(userID); err != nil {
		return snap, fmt.Errorf("load expenses: %w", err)
	}

	return snap, nil
}

// RestoreSet holds the parts of a backup being restored. A nil field means the
// backup did not carry that part and the stored data is left alone.
type RestoreSet struct {
	Car         *models.Car
	Settings    *models.Settings
	FuelLogs    *[]models.FuelLog
	TripLogs    *[]models.TripLog
	ExpenseLogs *[]models.ExpenseLog
}

// Restore replaces the present parts of a driver's data in one transaction
func (r *RecordRepository) Restore(userID string, set RestoreSet) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if set.Car != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.Car{}).Error; err != nil {
				return err
			}
			if err := tx.Create(set.Car).Error; err != nil {
				return fmt.Errorf("restore car: %w", err)
			}
		}

		if set.Settings != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.Settings{}).Error; err != nil {
				return err
			}
			if err := tx.Create(set.Settings).Error; err != nil {
				return fmt.Errorf("restore settings: %w", err)
			}
		}

		if set.FuelLogs != nil {
			if err := replaceAll(tx, userID, &models.FuelLog{}, *set.FuelLogs); err != nil {
				return fmt.Errorf("restore fuel logs: %w", err)
			}
		}
		if set.TripLogs != nil {
			if err := replaceAll(tx, userID, &models.TripLog{}, *set.TripLogs); err != nil {
				return fmt.Errorf("restore trips: %w", err)
			}
		}
		if set.ExpenseLogs != nil {
			if err := replaceAll(tx, userID, &models.ExpenseLog{}, *set.ExpenseLogs); err != nil {
				return fmt.Errorf("restore expenses: %w", err)
			}
		}

		return nil
	})
}

func replaceAll[T any](tx *gorm.DB, userID string, model interface{}, rows []T) error {
	if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 100).Error
}

// UsersWithWeeklyReport lists drivers who asked for the weekly goal email
func (r *RecordRepository) UsersWithWeeklyReport() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Settings{}).Select("user_id").Where("weekly_report_email = ?", true),
	).Find(&users).Error
	return users, err
}
