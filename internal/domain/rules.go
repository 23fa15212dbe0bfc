package domain

import (
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	seatNumberPattern = regexp.MustCompile(`^\d+[A-Z]$`)
	passportPattern   = regexp.MustCompile(`^[A-Z0-9]+$`)
	datePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// NormalizeSeatNumber trims and uppercases a seat such as " 12a " and
// reports whether the result is digits followed by one letter.
func NormalizeSeatNumber(seat string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(seat))
	return s, seatNumberPattern.MatchString(s)
}

func NormalizePassportNumber(passport string) (string, bool) {
	p := strings.ToUpper(strings.TrimSpace(passport))
	return p, passportPattern.MatchString(p)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmailShape is intentionally loose: an address needs an "@" and a ".".
func ValidEmailShape(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// NormalizeAirportCode returns the uppercased IATA code and whether it has
// exactly three characters.
func NormalizeAirportCode(code string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	return c, len(c) == 3
}

// ParseDate parses a strict YYYY-MM-DD calendar date in UTC.
func ParseDate(value string) (time.Time, bool) {
	if !datePattern.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UTCDay returns the [start, end) bounds of the UTC calendar day containing t.
func UTCDay(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
