package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]TimeOfDay{
		"09:00": {9, 0},
		"9:05":  {9, 5},
		"23:59": {23, 59},
		"00:00": {0, 0},
	}
	for in, want := range valid {
		got, err := ParseTimeOfDay(in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", in, got, want)
		}
	}

	invalid := []string{"24:00", "12:60", "1200", "", "ab:cd", "12:5"}
	for _, in := range invalid {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q) expected error", in)
		}
	}
}

func TestBusinessDays(t *testing.T) {
	loc := time.UTC
	ym := YearMonth{Year: 2026, Month: time.October}

	// October 2026 starts on a Thursday and has 22 weekdays.
	all := BusinessDays(ym, time.Date(2026, 11, 15, 0, 0, 0, 0, loc))
	assert.Len(t, all, 22)

	partial := BusinessDays(ym, time.Date(2026, 10, 5, 14, 0, 0, 0, loc))
	require.Len(t, partial, 3)
	assert.Equal(t, 1, partial[0].Day())
	assert.Equal(t, 2, partial[1].Day())
	assert.Equal(t, 5, partial[2].Day())
}

func TestYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02", ym.String())
	assert.Equal(t, 28, ym.LastDay(time.UTC).Day())
	assert.True(t, ym.Before(YearMonth{Year: 2026, Month: time.March}))
	assert.False(t, ym.Before(YearMonth{Year: 2025, Month: time.December}))

	_, err = ParseYearMonth("2026-13")
	assert.Error(t, err)
}

func TestDateOfUsesBusinessLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 16:30 UTC is already the next day in Tokyo.
	utc := time.Date(2026, 10, 15, 16, 30, 0, 0, time.UTC)
	d := DateOf(utc, tokyo)
	assert.Equal(t, 16, d.Day())
	assert.Equal(t, 0, d.Hour())
}

func TestMinutesBetweenTruncates(t *testing.T) {
	a := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, MinutesBetween(a, a.Add(10*time.Minute+59*time.Second)))
	assert.Equal(t, -1, MinutesBetween(a, a.Add(-90*time.Second)))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "08:35", FormatMinutes(515))
	assert.Equal(t, "-01:05", FormatMinutes(-65))
}
