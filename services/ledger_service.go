package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gigtrack-api/models"
	"gigtrack-api/repositories"
	"gigtrack-api/utils"
)

// ErrInvalidInput marks a write that breaks a data-model rule. Handlers map it
// to 400 Bad Request.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// LedgerService is the write boundary for a driver's records. Everything it
// stores has a valid date, non-negative amounts and a derived fuel total.
type LedgerService struct {
	records *repositories.RecordRepository
}

func NewLedgerService(records *repositories.RecordRepository) *LedgerService {
	return &LedgerService{records: records}
}

// Car and settings

func (s *LedgerService) GetCar(userID string) (*models.Car, error) {
	return s.records.GetCar(userID)
}

func (s *LedgerService) SaveCar(userID string, car models.Car) (*models.Car, error) {
	car.Name = strings.TrimSpace(car.Name)
	if car.Name == "" {
		return nil, invalid("car name is required")
	}
	if !car.FuelType.Valid() {
		return nil, invalid("unknown fuel type %q", car.FuelType)
	}
	if car.TankSize <= 0 {
		return nil, invalid("tank size must be positive")
	}
	if car.Odometer < 0 {
		return nil, invalid("odometer cannot be negative")
	}

	car.UserID = userID
	if car.ID == "" {
		car.ID = uuid.New().String()
	}
	if err := s.records.SaveCar(&car); err != nil {
		return nil, fmt.Errorf("save car: %w", err)
	}

	logger.Info().Str("user_id", userID).Float64("odometer", car.Odometer).Msg("car profile saved")
	return &car, nil
}

func (s *LedgerService) GetSettings(userID string) (*models.Settings, error) {
	return s.records.GetSettings(userID)
}

func (s *LedgerService) SaveSettings(userID string, settings models.Settings) (*models.Settings, error) {
	settings.CurrencyCode = strings.ToUpper(strings.TrimSpace(settings.CurrencyCode))
	if settings.CurrencyCode == "" {
		settings.CurrencyCode = models.DefaultCurrencyCode
	}
	if !utils.IsValidTaxRate(settings.TaxRatePercent) {
		return nil, invalid("tax rate must be between 0 and 100")
	}
	if settings.WeeklyGoalAmount < 0 {
		return nil, invalid("weekly goal cannot be negative")
	}
	if !utils.IsValidCurrency(settings.CurrencyCode) {
		return nil, invalid("currency must be a three letter code")
	}

	settings.UserID = userID
	if err := s.records.SaveSettings(&settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return &settings, nil
}

// Fuel

// AddFuel records a fill. The total price is always derived from litres and
// price per litre, and the fill must move the car's odometer forward.
func (s *LedgerService) AddFuel(userID string, log models.FuelLog) (*models.FuelLog, error) {
	if !utils.IsValidDate(log.Date) {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if log.Litres <= 0 {
		return nil, invalid("litres must be positive")
	}
	if log.PricePerLitre <= 0 {
		return nil, invalid("price per litre must be positive")
	}
	if log.Odometer < 0 {
		return nil, invalid("odometer cannot be negative")
	}

	log.ID = uuid.New().String()
	log.UserID = userID
	log.TotalPrice = models.FuelTotal(log.Litres, log.PricePerLitre)

	if err := s.records.AddFuelLog(&log); err != nil {
		if errors.Is(err, repositories.ErrOdometerNotIncreasing) {
			logger.Warn().Str("user_id", userID).Float64("odometer", log.Odometer).Msg("fuel log refused")
			return nil, err
		}
		return nil, fmt.Errorf("add fuel log: %w", err)
	}

	logger.Info().Str("user_id", userID).Str("fuel_log_id", log.ID).Float64("total_price", log.TotalPrice).Msg("fuel log added")
	return &log, nil
}

func (s *LedgerService) ListFuel(userID string) ([]models.FuelLog, error) {
	return s.records.ListFuelLogs(userID)
}

func (s *LedgerService) DeleteFuel(userID, id string) error {
	return s.records.DeleteFuelLog(userID, id)
}

// Trips

func validateTrip(trip models.TripLog) error {
	if !utils.IsValidDate(trip.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	if !trip.Type.Valid() {
		return invalid("trip type must be Business or Personal")
	}
	if trip.Km < 0 {
		return invalid("km cannot be negative")
	}
	if trip.DurationHours < 0 {
		return invalid("duration cannot be negative")
	}
	if trip.Earnings < 0 {
		return invalid("earnings cannot be negative")
	}
	return nil
}

func (s *LedgerService) AddTrip(userID string, trip models.TripLog) (*models.TripLog, error) {
	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	trip = trip.Normalize()
	trip.ID = uuid.New().String()
	trip.UserID = userID
	if err := s.records.AddTrip(&trip); err != nil {
		return nil, fmt.Errorf("add trip: %w", err)
	}

	logger.Info().Str("user_id", userID).Str("trip_id", trip.ID).Str("type", string(trip.Type)).Msg("trip added")
	return &trip, nil
}

// UpdateTrip edits a trip in place. The id is taken from the path, never the body.
func (s *LedgerService) UpdateTrip(userID, id string, trip models.TripLog) (*models.TripLog, error) {
	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	trip = trip.Normalize()
	trip.ID = id
	trip.UserID = userID
	if err := s.records.UpdateTrip(&trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *LedgerService) ListTrips(userID string) ([]models.TripLog, error) {
	return s.records.ListTrips(userID)
}

func (s *LedgerService) DeleteTrip(userID, id string) error {
	return s.records.DeleteTrip(userID, id)
}

// Expenses

func (s *LedgerService) AddExpense(userID string, expense models.ExpenseLog) (*models.ExpenseLog, error) {
	if !utils.IsValidDate(expense.Date) {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if !expense.Category.Valid() {
		return nil, invalid("unknown expense category %q", expense.Category)
	}
	if expense.Cost < 0 {
		return nil, invalid("cost cannot be negative")
	}

	expense.ID = uuid.New().String()
	expense.UserID = userID
	expense.Note = strings.TrimSpace(expense.Note)
	if err := s.records.AddExpense(&expense); err != nil {
		return nil, fmt.Errorf("add expense: %w", err)
	}
	return &expense, nil
}

func (s *LedgerService) ListExpenses(userID string) ([]models.ExpenseLog, error) {
	return s.records.ListExpenses(userID)
}

func (s *LedgerService) DeleteExpense(userID, id string) error {
	return s.records.DeleteExpense(userID, id)
}
