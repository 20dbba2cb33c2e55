package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"mid-month plus one", "2026-01-15", 1, "2026-02-15"},
		{"jan 31 clamps to feb 28", "2026-01-31", 1, "2026-02-28"},
		{"jan 31 leap year clamps to feb 29", "2028-01-31", 1, "2028-02-29"},
		{"mar 31 clamps to apr 30", "2026-03-31", 1, "2026-04-30"},
		{"twelve months keeps day", "2026-01-15", 12, "2027-01-15"},
		{"three months", "2026-11-30", 3, "2027-02-28"},
		{"six months crosses year", "2026-08-31", 6, "2027-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := time.Parse("2006-01-02", tt.start)
			assert.NoError(t, err)

			got := AddMonthsClamped(start, tt.months)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestAddMonthsClampedPreservesClock(t *testing.T) {
	start := time.Date(2026, 1, 15, 9, 30, 45, 0, time.UTC)
	got := AddMonthsClamped(start, 1)

	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 45, got.Second())
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 2, 12, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
