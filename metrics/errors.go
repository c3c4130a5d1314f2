package metrics

import (
	"fmt"
	"time"

	"gigtrack-api/models"
)

// InvalidRecordError reports a log row whose date is not a valid calendar
// date. Records are never silently dropped from a calculation; the caller
// receives this error instead.
type InvalidRecordError struct {
	Kind string // "trip", "fuel" or "expense"
	ID   string
	Date string
	Err  error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid %s record %q: date %q: %v", e.Kind, e.ID, e.Date, e.Err)
}

func (e *InvalidRecordError) Unwrap() error {
	return e.Err
}

// parseDate reads a YYYY-MM-DD record date as local midnight in loc.
func parseDate(kind, id, raw string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(models.DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, &InvalidRecordError{Kind: kind, ID: id, Date: raw, Err: err}
	}
	return d, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
