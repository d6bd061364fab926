package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"ISO", "2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"European", "15.01.2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"slash European", "15/01/2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"full timestamp", "2025-01-15 08:30:00", time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC), false},
		{"month name", "Jan 15, 2025", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"extra whitespace", "  2025-01-15  ", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "not a date", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-01", MonthKey(time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", MonthKey(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(jan1, jan1))
	assert.Equal(t, 30, DaysBetween(jan1, jan1.AddDate(0, 0, 30)))
	assert.Equal(t, -7, DaysBetween(jan1, jan1.AddDate(0, 0, -7)))

	// Time of day does not change the distance.
	late := time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(jan1, late))
}

func TestStartAndEndOfMonth(t *testing.T) {
	d := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(d))
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), EndOfMonth(d))
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2025-03-09", ToISODate(time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC)))
}
