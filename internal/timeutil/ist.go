package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Clock returns the current time; controllers take one so tests can pin it
type Clock func() time.Time

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseInIST parses a time string and returns it in IST
func ParseInIST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, IST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatIST formats a time in IST using the given layout
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// DayStartParam renders an inclusive lower day boundary for query strings
func DayStartParam(date string) string {
	return date + "T00:00:00"
}

// DayEndParam renders an inclusive upper day boundary for query strings
func DayEndParam(date string) string {
	return date + "T23:59:59"
}

// ToWire renders t in the timestamp format the booking API accepts
func ToWire(t time.Time) string {
	return t.UTC().Format(WireLayout)
}

// ParseFlexible accepts the timestamp shapes the API and the browser produce.
// Values without a zone are read as UTC.
func ParseFlexible(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{time.RFC3339Nano, WireLayout, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02 15:04:05", DateLayout} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Common layouts for IST formatting
const (
	DateLayout      = "2006-01-02"
	DateTimeLayout  = "2006-01-02 15:04:05"
	DisplayLayout   = "02 Jan 2006"
	DateInputLayout = "2006-01-02T15:04" // <input type="datetime-local">
	WireLayout      = "2006-01-02T15:04:05.000Z07:00"
)
