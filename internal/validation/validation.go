// Package validation holds the pure predicates shared by the three leave
// commands. All functions are total over strings; none of them touches the
// store or the clock except IsFutureDate, which has an At variant for
// injected clocks.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateFormatRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	leaveIDRegex    = regexp.MustCompile(`^LID-\d+$`)
)

// IsValidDateFormat reports whether s is shaped DD/MM/YYYY. Purely
// structural: 32/13/9999 passes here and is rejected by the calendar
// round-trip in IsFutureDate.
func IsValidDateFormat(s string) bool {
	return dateFormatRegex.MatchString(s)
}

// ParseDate builds a time.Time from a DD/MM/YYYY string. Out-of-range
// components are normalized by time.Date (31/02 becomes 02/03 or 03/03),
// which is what the round-trip check in IsFutureDate relies on.
func ParseDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// IsValidDateRange reports whether from <= to. Both inputs are expected to
// have already passed IsValidDateFormat.
func IsValidDateRange(from, to string) bool {
	fromDate, okFrom := ParseDate(from)
	toDate, okTo := ParseDate(to)
	if !okFrom || !okTo {
		return false
	}
	return !fromDate.After(toDate)
}

// IsFutureDate reports whether s names today or a later calendar day in the
// local timezone.
func IsFutureDate(s string) bool {
	return IsFutureDateAt(s, time.Now())
}

// IsFutureDateAt is IsFutureDate against an explicit clock. It rejects
// malformed input and dates that do not round-trip (day 31 of a 30-day
// month); today counts as future.
func IsFutureDateAt(s string, now time.Time) bool {
	if !IsValidDateFormat(s) {
		return false
	}

	parts := strings.Split(s, "/")
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	given := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	if given.Day() != day || given.Month() != time.Month(month) || given.Year() != year {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !given.Before(today)
}

// IsValidLeaveID reports whether s is a well-formed request identifier,
// LID- followed by digits.
func IsValidLeaveID(s string) bool {
	return leaveIDRegex.MatchString(s)
}
