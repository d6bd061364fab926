// Package dateutils provides the date parsing and bucketing helpers used
// throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthLayout        = "2006-01"
)

// CommonFormats is the list of layouts tried when parsing transaction dates,
// in order of preference.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	time.RFC3339,
	DateLayoutEuropean,
	"02/01/2006",
	DateLayoutUS,
	"02-01-2006",
	"2006/01/02",
	"2.1.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a raw date string.
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using the common formats.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// MonthKey returns the YYYY-MM bucket a date falls into.
func MonthKey(date time.Time) string {
	return date.Format(MonthLayout)
}

// DaysBetween returns the number of whole days from a to b, ignoring the
// time-of-day component. The result is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}
