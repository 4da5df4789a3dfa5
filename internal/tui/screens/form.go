package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field parsing for the add/edit forms. Blank input means "no value", which
// the billing engine treats as zero or falls back per field.

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number: %s", s)
	}
	return &v, nil
}

// parseOptionalClock parses "HH:MM" on the given calendar day.
func parseOptionalClock(day time.Time, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	clock, err := time.Parse("15:04", s)
	if err != nil {
		return nil, fmt.Errorf("invalid time (want HH:MM): %s", s)
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
	return &t, nil
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

func formatMoney(currency string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
