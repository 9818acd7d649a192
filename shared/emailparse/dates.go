package emailparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Textual date forms recognized inside confirmation emails, tried in order.
// The first pattern that yields a real calendar date wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?P<month>jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(?P<day>\d{1,2}),?\s+(?P<year>\d{4})`),
	regexp.MustCompile(`(?i)(?P<day>\d{1,2})\s+(?P<month>jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(?P<year>\d{4})`),
	regexp.MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})`),
	regexp.MustCompile(`(?P<month>\d{1,2})/(?P<day>\d{1,2})/(?P<year>\d{4})`),
}

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ExtractDate scans a short text fragment for a calendar date. Fragments may
// carry surrounding noise such as weekday names, so matching is a search, not
// a full-string match. Returns ok=false when no pattern produces a real date;
// callers must treat that as recoverable.
func ExtractDate(fragment string) (time.Time, bool) {
	fragment = strings.TrimSpace(fragment)

	for _, pattern := range datePatterns {
		match := pattern.FindStringSubmatch(fragment)
		if match == nil {
			continue
		}

		groups := map[string]string{}
		for i, name := range pattern.SubexpNames() {
			if name != "" {
				groups[name] = match[i]
			}
		}

		month, ok := resolveMonth(groups["month"])
		if !ok {
			continue
		}

		day, err := strconv.Atoi(groups["day"])
		if err != nil {
			continue
		}

		year, err := strconv.Atoi(groups["year"])
		if err != nil {
			continue
		}

		date, ok := makeDate(year, month, day)
		if !ok {
			continue
		}

		return date, true
	}

	return time.Time{}, false
}

func resolveMonth(raw string) (time.Month, bool) {
	if numeric, err := strconv.Atoi(raw); err == nil {
		if numeric < 1 || numeric > 12 {
			return 0, false
		}

		return time.Month(numeric), true
	}

	month, ok := monthsByAbbrev[strings.ToLower(raw)[:3]]

	return month, ok
}

// makeDate rejects day-of-month overflow (e.g. Feb 30) instead of letting
// time.Date normalize it into the next month.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}

	return date, true
}
