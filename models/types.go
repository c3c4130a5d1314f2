// File: /models/types.go
package models

// DateLayout is the calendar date format used by every log row
const DateLayout = "2006-01-02"

type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	}
	return false
}

type TripType string

const (
	TripBusiness TripType = "Business"
	TripPersonal TripType = "Personal"
)

func (t TripType) Valid() bool {
	return t == TripBusiness || t == TripPersonal
}

type ExpenseCategory string

const (
	ExpenseMaintenance  ExpenseCategory = "Maintenance"
	ExpenseInsurance    ExpenseCategory = "Insurance"
	ExpenseRepairs      ExpenseCategory = "Repairs"
	ExpenseCleaning     ExpenseCategory = "Cleaning"
	ExpenseRegistration ExpenseCategory = "Registration"
	ExpenseOther        ExpenseCategory = "Other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMaintenance, ExpenseInsurance, ExpenseRepairs, ExpenseCleaning, ExpenseRegistration, ExpenseOther:
		return true
	}
	return false
}
