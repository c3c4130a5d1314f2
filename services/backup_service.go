package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gigtrack-api/models"
	"gigtrack-api/repositories"
	"gigtrack-api/utils"
)

// Backup is the interchange file. Field names follow the files written by the
// GigTrack web app, so its backups restore unchanged. Every key is
// optional; a missing (or null) key leaves that part of the data alone.
type Backup struct {
	Car         *BackupCar       `json:"car,omitempty"`
	Settings    *BackupSettings  `json:"settings,omitempty"`
	FuelLogs    *[]BackupFuelLog `json:"fuelLogs,omitempty"`
	TripLogs    *[]BackupTrip    `json:"tripLogs,omitempty"`
	ExpenseLogs *[]BackupExpense `json:"expenseLogs,omitempty"`
}

type BackupCar struct {
	Name     string  `json:"name"`
	FuelType string  `json:"fuelType"`
	TankSize float64 `json:"tankSize"`
	Odometer float64 `json:"odometer"`
}

type BackupSettings struct {
	TaxRate           float64 `json:"taxRate"`
	WeeklyGoal        float64 `json:"weeklyGoal"`
	Currency          string  `json:"currency,omitempty"`
	WeeklyReportEmail bool    `json:"weeklyReportEmail,omitempty"`
}

type BackupFuelLog struct {
	ID         RecordID `json:"id"`
	Date       string   `json:"date"`
	Odometer   float64  `json:"odometer"`
	Litres     float64  `json:"litres"`
	Price      float64  `json:"price"`
	TotalPrice float64  `json:"totalPrice"`
	FullTank   bool     `json:"fullTank"`
}

type BackupTrip struct {
	ID       RecordID `json:"id"`
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	Platform string   `json:"platform"`
	Km       float64  `json:"km"`
	Duration float64  `json:"duration"`
	Earnings float64  `json:"earnings"`
}

type BackupExpense struct {
	ID       RecordID `json:"id"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Cost     float64  `json:"cost"`
	Note     string   `json:"note,omitempty"`
}

// RecordID accepts ids written as JSON numbers (older backups) or strings.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

type BackupService struct {
	records *repositories.RecordRepository
}

func NewBackupService(records *repositories.RecordRepository) *BackupService {
	return &BackupService{records: records}
}

// Export writes every part of the driver's data
func (s *BackupService) Export(userID string) (*Backup, error) {
	snap, err := s.records.Snapshot(userID)
	if err != nil {
		return nil, err
	}

	b := &Backup{
		Settings: &BackupSettings{
			TaxRate:           snap.Settings.TaxRatePercent,
			WeeklyGoal:        snap.Settings.WeeklyGoalAmount,
			Currency:          snap.Settings.CurrencyCode,
			WeeklyReportEmail: snap.Settings.WeeklyReportEmail,
		},
	}
	if snap.Car != nil {
		b.Car = &BackupCar{
			Name:     snap.Car.Name,
			FuelType: string(snap.Car.FuelType),
			TankSize: snap.Car.TankSize,
			Odometer: snap.Car.Odometer,
		}
	}

	fuel := make([]BackupFuelLog, 0, len(snap.FuelLogs))
	for _, l := range snap.FuelLogs {
		fuel = append(fuel, BackupFuelLog{
			ID: RecordID(l.ID), Date: l.Date, Odometer: l.Odometer, Litres: l.Litres,
			Price: l.PricePerLitre, TotalPrice: l.TotalPrice, FullTank: l.FullTank,
		})
	}
	trips := make([]BackupTrip, 0, len(snap.TripLogs))
	for _, t := range snap.TripLogs {
		trips = append(trips, BackupTrip{
			ID: RecordID(t.ID), Date: t.Date, Type: string(t.Type), Platform: t.Platform,
			Km: t.Km, Duration: t.DurationHours, Earnings: t.Earnings,
		})
	}
	expenses := make([]BackupExpense, 0, len(snap.ExpenseLogs))
	for _, e := range snap.ExpenseLogs {
		expenses = append(expenses, BackupExpense{
			ID: RecordID(e.ID), Date: e.Date, Category: string(e.Category), Cost: e.Cost, Note: e.Note,
		})
	}
	b.FuelLogs, b.TripLogs, b.ExpenseLogs = &fuel, &trips, &expenses

	return b, nil
}

// ImportSummary reports which parts of a backup were restored.
type ImportSummary struct {
	Car         bool `json:"car"`
	Settings    bool `json:"settings"`
	FuelLogs    int  `json:"fuel_logs"`
	TripLogs    int  `json:"trip_logs"`
	ExpenseLogs int  `json:"expense_logs"`
}

// Import replaces the parts present in the backup and nothing else. The whole
// import is refused if any record is invalid.
func (s *BackupService) Import(userID string, b Backup) (*ImportSummary, error) {
	var set repositories.RestoreSet
	summary := &ImportSummary{FuelLogs: -1, TripLogs: -1, ExpenseLogs: -1}

	if b.Car != nil {
		fuelType := models.FuelType(b.Car.FuelType)
		if !fuelType.Valid() {
			return nil, invalid("car: unknown fuel type %q", b.Car.FuelType)
		}
		set.Car = &models.Car{
			ID:       uuid.New().String(),
			UserID:   userID,
			Name:     b.Car.Name,
			FuelType: fuelType,
			TankSize: b.Car.TankSize,
			Odometer: b.Car.Odometer,
		}
		summary.Car = true
	}

	if b.Settings != nil {
		settings := models.DefaultSettings(userID)
		settings.TaxRatePercent = b.Settings.TaxRate
		settings.WeeklyGoalAmount = b.Settings.WeeklyGoal
		settings.WeeklyReportEmail = b.Settings.WeeklyReportEmail
		if c := strings.ToUpper(b.Settings.Currency); c != "" {
			settings.CurrencyCode = c
		}
		if !utils.IsValidTaxRate(settings.TaxRatePercent) || settings.WeeklyGoalAmount < 0 || !utils.IsValidCurrency(settings.CurrencyCode) {
			return nil, invalid("settings are out of range")
		}
		set.Settings = &settings
		summary.Settings = true
	}

	if b.FuelLogs != nil {
		logs := make([]models.FuelLog, 0, len(*b.FuelLogs))
		ids := importIDs{userID: userID, kind: "fuel"}
		for i, l := range *b.FuelLogs {
			if !utils.IsValidDate(l.Date) {
				return nil, invalid("fuelLogs[%d]: date %q must be YYYY-MM-DD", i, l.Date)
			}
			if l.Litres <= 0 || l.Price <= 0 {
				return nil, invalid("fuelLogs[%d]: litres and price must be positive", i)
			}
			id, err := ids.next("fuelLogs", l.ID, i)
			if err != nil {
				return nil, err
			}
			logs = append(logs, models.FuelLog{
				ID:            id,
				UserID:        userID,
				Date:          l.Date,
				Odometer:      l.Odometer,
				Litres:        l.Litres,
				PricePerLitre: l.Price,
				TotalPrice:    models.FuelTotal(l.Litres, l.Price),
				FullTank:      l.FullTank,
			})
		}
		set.FuelLogs = &logs
		summary.FuelLogs = len(logs)
	}

	if b.TripLogs != nil {
		trips := make([]models.TripLog, 0, len(*b.TripLogs))
		ids := importIDs{userID: userID, kind: "trip"}
		for i, t := range *b.TripLogs {
			tripType := models.TripType(t.Type)
			if tripType == "" {
				tripType = models.TripBusiness
			}
			id, err := ids.next("tripLogs", t.ID, i)
			if err != nil {
				return nil, err
			}
			trip := models.TripLog{
				ID:            id,
				UserID:        userID,
				Date:          t.Date,
				Type:          tripType,
				Platform:      t.Platform,
				Km:            t.Km,
				DurationHours: t.Duration,
				Earnings:      t.Earnings,
			}
			if err := validateTrip(trip); err != nil {
				return nil, fmt.Errorf("tripLogs[%d]: %w", i, err)
			}
			trips = append(trips, trip.Normalize())
		}
		set.TripLogs = &trips
		summary.TripLogs = len(trips)
	}

	if b.ExpenseLogs != nil {
		expenses := make([]models.ExpenseLog, 0, len(*b.ExpenseLogs))
		ids := importIDs{userID: userID, kind: "expense"}
		for i, e := range *b.ExpenseLogs {
			category := models.ExpenseCategory(e.Category)
			if !utils.IsValidDate(e.Date) || !category.Valid() || e.Cost < 0 {
				return nil, invalid("expenseLogs[%d]: invalid date, category or cost", i)
			}
			id, err := ids.next("expenseLogs", e.ID, i)
			if err != nil {
				return nil, err
			}
			expenses = append(expenses, models.ExpenseLog{
				ID:       id,
				UserID:   userID,
				Date:     e.Date,
				Category: category,
				Cost:     e.Cost,
				Note:     e.Note,
			})
		}
		set.ExpenseLogs = &expenses
		summary.ExpenseLogs = len(expenses)
	}

	if err := s.records.Restore(userID, set); err != nil {
		return nil, fmt.Errorf("restore backup: %w", err)
	}

	logger.Info().Str("user_id", userID).
		Bool("car", summary.Car).
		Bool("settings", summary.Settings).
		Int("fuel_logs", summary.FuelLogs).
		Int("trip_logs", summary.TripLogs).
		Int("expense_logs", summary.ExpenseLogs).
		Msg("backup imported")
	return summary, nil
}

// importID maps a backup id to a UUID derived from the driver and the
// id in the file. Ids are scoped per driver so a file exported by one account can
// be imported by another, and importing the same file twice yields the same ids.
func importID(userID, kind string, id RecordID, index int) string {
	raw := string(id)
	if raw == "" {
		raw = "#" + strconv.Itoa(index)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(userID+"/"+kind+"/"+raw)).String()
}

// importIDs assigns ids within one collection and refuses an id the file
// has already used.
type importIDs struct {
	userID string
	kind   string
	seen   map[string]bool
}

func (ids *importIDs) next(collection string, raw RecordID, index int) (string, error) {
	if ids.seen == nil {
		ids.seen = map[string]bool{}
	}
	id := importID(ids.userID, ids.kind, raw, index)
	if ids.seen[id] {
		return "", invalid("%s[%d]: duplicate id %q", collection, index, string(raw))
	}
	ids.seen[id] = true
	return id, nil
}
