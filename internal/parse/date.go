package parse

import (
	"strconv"
	"strings"
	"time"
)

// DateLocale selects how an ambiguous slash date such as "03/04/2025" is
// read. The legacy import path guessed: a first component above 12 has to
// be a day, anything else was read month-first. That guess cannot tell
// Mar 4 from Apr 3, so the policy is explicit and configurable instead of
// silently fixed one way.
type DateLocale int

const (
	// LocaleBR reads slash dates as DD/MM/YYYY.
	LocaleBR DateLocale = iota
	// LocaleUS reads slash dates as MM/DD/YYYY.
	LocaleUS
	// LocaleHeuristic keeps the legacy guess: day-first when the first
	// component exceeds 12, month-first otherwise.
	LocaleHeuristic
)

// ParseDateLocale maps a config label to a DateLocale, defaulting to BR.
func ParseDateLocale(label string) DateLocale {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "US":
		return LocaleUS
	case "HEURISTIC":
		return LocaleHeuristic
	default:
		return LocaleBR
	}
}

// excelEpochOffsetDays is the distance in days between the Excel serial
// epoch (1899-12-30) and the Unix epoch.
const excelEpochOffsetDays = 25569

var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-01-2006",
}

// Date converts a raw cell value into a calendar date. Accepted inputs:
// a time.Time as-is, a numeric Excel serial date, a DD/MM/YYYY (or
// MM/DD/YYYY, per locale) string, or one of a few generic layouts.
// The boolean is false when nothing matched; no error is ever returned.
func Date(v any, locale DateLocale) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case float64:
		return excelSerialDate(val), true
	case int:
		return excelSerialDate(float64(val)), true
	case int64:
		return excelSerialDate(float64(val)), true
	case string:
		return dateFromString(val, locale)
	default:
		return time.Time{}, false
	}
}

// excelSerialDate converts a serial counted in days since 1899-12-30 into
// a UTC timestamp.
func excelSerialDate(serial float64) time.Time {
	seconds := (serial - excelEpochOffsetDays) * 86400
	return time.Unix(int64(seconds), 0).UTC()
}

func dateFromString(s string, locale DateLocale) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// A bare number in a CSV cell is still an Excel serial.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return excelSerialDate(serial), true
	}

	if t, ok := slashDate(s, locale); ok {
		return t, true
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func slashDate(s string, locale DateLocale) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	day, month := first, second
	switch locale {
	case LocaleUS:
		day, month = second, first
	case LocaleHeuristic:
		if first <= 12 {
			day, month = second, first
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
