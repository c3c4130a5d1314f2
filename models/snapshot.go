// File: /models/snapshot.go
package models

// Snapshot is an immutable view of one driver's records. Metrics are always
// computed against a snapshot; writes produce a new one on the next load.
type Snapshot struct {
	Car         *Car
	Settings    Settings
	FuelLogs    []FuelLog
	TripLogs    []TripLog
	ExpenseLogs []ExpenseLog
}
