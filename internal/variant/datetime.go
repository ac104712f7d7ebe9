package variant

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned when a datetime string does not match
// the canonical form or fails to parse as a valid calendar date/time.
var ErrInvalidDateTime = errors.New("variant: invalid datetime")

// canonicalPattern accepts the canonical "YYYY-MM-DD[ HH:MM:SS[.fraction]]"
// rendering plus an optional fractional-second component of 1-9 digits
// and an optional 12-hour AM/PM suffix: the one pattern this engine
// recognizes without a full strftime implementation.
var canonicalPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})(?:[ T](\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?\s*([AaPp][Mm])?)?$`)

// ParseDateTime parses s in the canonical rendering Format produces, or
// the one recognized strftime-like variant with a 12-hour clock and a
// variable-precision fractional second. The returned RawDateTime stores
// a 0-11 month and a 0-30 day-of-month, matching the engine's on-disk
// date fields.
func ParseDateTime(s string) (RawDateTime, error) {
	m := canonicalPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RawDateTime{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return RawDateTime{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}

	d := RawDateTime{
		Year:       int32(year),
		Month:      uint8(month - 1),
		DayOfMonth: uint8(day - 1),
		DayOfWeek:  uint8(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()),
	}

	if m[4] == "" {
		return d, nil
	}

	hours, _ := strconv.Atoi(m[4])
	minutes, _ := strconv.Atoi(m[5])
	seconds, _ := strconv.Atoi(m[6])
	meridiem := strings.ToUpper(m[8])
	if meridiem != "" {
		if hours < 1 || hours > 12 {
			return RawDateTime{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
		}
		switch {
		case meridiem == "AM" && hours == 12:
			hours = 0
		case meridiem == "PM" && hours != 12:
			hours += 12
		}
	}
	if hours > 23 || minutes > 59 || seconds > 59 {
		return RawDateTime{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}

	var nanos uint32
	if m[7] != "" {
		padded := (m[7] + "000000000")[:9]
		n, _ := strconv.ParseUint(padded, 10, 32)
		nanos = uint32(n)
	}

	d.HasTimePart = true
	d.Hours = uint8(hours)
	d.Minutes = uint8(minutes)
	d.Seconds = uint8(seconds)
	d.Nanos = nanos
	return d, nil
}

// Format renders d in the canonical form:
// "YYYY-MM-DD HH:MM:SS.fffffffff" when a time part is present, else
// "YYYY-MM-DD". d.Month and d.DayOfMonth are 0-indexed internally, so
// both are shifted back to their calendar values here.
func (d RawDateTime) Format() string {
	date := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.DayOfMonth+1)
	if !d.HasTimePart {
		return date
	}
	return fmt.Sprintf("%s %02d:%02d:%02d.%09d", date, d.Hours, d.Minutes, d.Seconds, d.Nanos)
}

// FromUnixSeconds constructs a RawDateTime (with a time part) from a
// Unix timestamp, interpreted in UTC.
func FromUnixSeconds(sec int64) RawDateTime {
	t := time.Unix(sec, 0).UTC()
	return RawDateTime{
		Year:        int32(t.Year()),
		Month:       uint8(t.Month() - 1),
		DayOfMonth:  uint8(t.Day() - 1),
		DayOfWeek:   uint8(t.Weekday()),
		HasTimePart: true,
		Hours:       uint8(t.Hour()),
		Minutes:     uint8(t.Minute()),
		Seconds:     uint8(t.Second()),
		Nanos:       0,
	}
}
