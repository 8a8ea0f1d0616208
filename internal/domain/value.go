package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidLiteral is returned when a raw value does not parse as its declared type
var ErrInvalidLiteral = errors.New("invalid literal")

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Value is a typed runtime value: Number for TypeNumber, normalized Text otherwise
type Value struct {
	Type   ValueType
	Number float64
	Text   string
}

// NumberValue wraps a number
func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, Number: n}
}

// String renders the value for logs and error messages
func (v Value) String() string {
	if v.Type == TypeNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// ParseValue parses raw as typ, normalizing time/date/datetime to fixed-width forms
func ParseValue(typ ValueType, raw string) (Value, error) {
	return ParseLiteral(typ, raw, "")
}

// ParseLiteral is ParseValue with an optional AM/PM meridiem for time values
func ParseLiteral(typ ValueType, raw, meridiem string) (Value, error) {
	switch typ {
	case TypeNumber:
		n, err := ParseNumber(raw)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(n), nil
	case TypeTime:
		t, err := NormalizeTime(raw, meridiem)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeTime, Text: t}, nil
	case TypeDate:
		d, err := NormalizeDate(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeDate, Text: d}, nil
	case TypeDateTime:
		dt, err := NormalizeDateTime(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeDateTime, Text: dt}, nil
	default:
		return Value{}, fmt.Errorf("%w: unknown type %q", ErrInvalidLiteral, typ)
	}
}

// ParseNumber accepts plain decimal notation only (no exponent, no NaN/Inf)
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidLiteral, raw)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidLiteral, raw)
	}
	return n, nil
}

// NormalizeTime parses HH:MM or HH:MM:SS (24-hour), or a 12-hour value with meridiem
// AM/PM given separately or as a suffix ("9:30 PM"), and returns HH:MM:SS
func NormalizeTime(raw, meridiem string) (string, error) {
	s := strings.TrimSpace(raw)
	m := strings.ToUpper(strings.TrimSpace(meridiem))
	if m == "" {
		upper := strings.ToUpper(s)
		if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
			m = upper[len(upper)-2:]
			s = strings.TrimSpace(s[:len(s)-2])
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("%w: time %q must be HH:MM or HH:MM:SS", ErrInvalidLiteral, raw)
	}

	fields := make([]int, 3)
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 || (i > 0 && len(p) != 2) {
			return "", fmt.Errorf("%w: time %q must be HH:MM or HH:MM:SS", ErrInvalidLiteral, raw)
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("%w: time %q must be HH:MM or HH:MM:SS", ErrInvalidLiteral, raw)
			}
		}
		fields[i], _ = strconv.Atoi(p)
	}
	hour, minute, second := fields[0], fields[1], fields[2]

	switch m {
	case "":
		if hour > 23 {
			return "", fmt.Errorf("%w: hour %d out of range in %q", ErrInvalidLiteral, hour, raw)
		}
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("%w: 12-hour clock hour %d out of range in %q", ErrInvalidLiteral, hour, raw)
		}
		if m == "AM" && hour == 12 {
			hour = 0
		} else if m == "PM" && hour != 12 {
			hour += 12
		}
	default:
		return "", fmt.Errorf("%w: meridiem %q must be AM or PM", ErrInvalidLiteral, meridiem)
	}

	if minute > 59 || second > 59 {
		return "", fmt.Errorf("%w: minutes/seconds out of range in %q", ErrInvalidLiteral, raw)
	}

	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), nil
}

// NormalizeDate validates a calendar date YYYY-MM-DD
func NormalizeDate(raw string) (string, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be a valid YYYY-MM-DD", ErrInvalidLiteral, raw)
	}
	return t.Format(DateFormat), nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// NormalizeDateTime parses an ISO-8601 timestamp and returns it in UTC as YYYY-MM-DDTHH:MM:SSZ
// Timestamps without an offset are taken as UTC
func NormalizeDateTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDateTime(t), nil
		}
	}
	return "", fmt.Errorf("%w: datetime %q must be ISO-8601", ErrInvalidLiteral, raw)
}

// FormatDateTime formats an instant the same way NormalizeDateTime does
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}
