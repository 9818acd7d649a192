package emailparse_test

import (
	"fmt"
	"staysync/shared/emailparse"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{
			name:     "month name first",
			input:    "Dec 15, 2025",
			expected: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "full month name first",
			input:    "December 15, 2025",
			expected: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "day before month name",
			input:    "15 Dec 2025",
			expected: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "iso numeric",
			input:    "2025-12-15",
			expected: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "us numeric",
			input:    "12/15/2025",
			expected: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "leading weekday tolerated",
			input:    "Thursday, December 15, 2025",
			expected: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "lowercase month name",
			input:    "jan 2, 2026",
			expected: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "no comma after day",
			input:    "Mar 3 2026",
			expected: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:  "february overflow rejected",
			input: "Feb 30, 2025",
			ok:    false,
		},
		{
			name:  "thirty first of april rejected",
			input: "2025-04-31",
			ok:    false,
		},
		{
			name:  "month thirteen rejected",
			input: "13/15/2025",
			ok:    false,
		},
		{
			name:  "no date at all",
			input: "see you soon",
			ok:    false,
		},
		{
			name:  "empty fragment",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := emailparse.ExtractDate(tt.input)

			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.expected, date)
			}
		})
	}
}

func TestExtractDateAllFormsAgree(t *testing.T) {
	// Every supported textual form of the same calendar date must resolve to
	// the same value.
	expected := time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)

	forms := []string{
		"Jul 4, 2026",
		"4 Jul 2026",
		"2026-07-04",
		"7/4/2026",
	}

	for _, form := range forms {
		t.Run(form, func(t *testing.T) {
			date, ok := emailparse.ExtractDate(form)

			assert.True(t, ok)
			assert.Equal(t, expected, date)
		})
	}
}

func TestExtractDateInvalidDaysNeverPanic(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	for _, month := range months {
		t.Run(month, func(t *testing.T) {
			_, ok := emailparse.ExtractDate(fmt.Sprintf("%s 32, 2025", month))
			assert.False(t, ok)
		})
	}
}
