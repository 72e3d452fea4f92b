package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// ValidationError is a single field failure reported back to the client.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects field failures; the response layer turns it into a 422.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// ToMap keys messages by field. A later failure for the same field wins.
func (v ValidationErrors) ToMap() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	uuidv7Pattern    = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	digitsPattern    = regexp.MustCompile(`^[0-9]+$`)
	phonePattern     = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	phoneSeparators  = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUUID accepts version 7 UUIDs in either case. Every primary key is generated by uuidv7().
func IsValidUUID(id string) bool {
	return uuidv7Pattern.MatchString(strings.ToLower(id))
}

func IsNumeric(s string) bool {
	return digitsPattern.MatchString(s)
}

// IsValidPhoneNumber accepts 8 to 15 digits with an optional leading '+'.
// Spaces, dashes and parentheses are ignored.
func IsValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(phone))
}

func IsInSlice(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}

// IsValidDate parses a "YYYY-MM-DD" calendar date.
func IsValidDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

// IsValidMonth parses a "YYYY-MM" month and returns its first day in UTC.
func IsValidMonth(s string) (time.Time, bool) {
	t, err := time.Parse(monthLayout, s)
	return t, err == nil
}

// IsValidDateTime parses an RFC 3339 timestamp, with or without fractional seconds.
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	return t, err == nil
}

// IsValidTimeOfDay accepts "HH:MM" or "HH:MM:SS" on a 24-hour clock.
func IsValidTimeOfDay(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

func IsValidOTPCode(code string) bool {
	return len(code) == 6 && IsNumeric(code)
}

func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}
