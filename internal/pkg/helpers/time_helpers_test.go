package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterPeriod(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "2024-Q1"},
		{time.March, "2024-Q1"},
		{time.April, "2024-Q2"},
		{time.June, "2024-Q2"},
		{time.July, "2024-Q3"},
		{time.September, "2024-Q3"},
		{time.October, "2024-Q4"},
		{time.December, "2024-Q4"},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, QuarterPeriod(time.Date(2024, tt.month, 15, 0, 0, 0, 0, time.UTC)))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 1st is already the 2nd in Tokyo.
	now := time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), StartOfDay(now, tokyo))
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), StartOfDay(now, time.UTC))
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), StartOfDay(now, nil))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, 2, 27, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(from, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(from, from))
	assert.Equal(t, -27, DaysBetween(from, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-03-31T10:20:30Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("31/03/2024")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
}
