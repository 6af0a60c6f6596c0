package schedule

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
)

func TestShiftSchedule_Windows(t *testing.T) {
	s := Default()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 60, s.BreakMinutes())
	assert.True(t, s.NightWraps())
	assert.False(t, s.EndsNextDay())

	s.BreakStart = timeutil.MustTimeOfDay("23:30")
	s.BreakEnd = timeutil.MustTimeOfDay("00:15")
	assert.Equal(t, 45, s.BreakMinutes())
}

func TestShiftSchedule_Validate(t *testing.T) {
	s := Default()
	s.StandardEnd = s.StandardStart
	assert.ErrorIs(t, s.Validate(), ErrEmptyShift)

	s = Default()
	s.StandardDailyMinutes = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidStandardMinutes)

	s = Default()
	s.BreakStart = timeutil.MustTimeOfDay("08:00")
	s.BreakEnd = timeutil.MustTimeOfDay("18:00")
	assert.ErrorIs(t, s.Validate(), ErrBreakTooLong)
}
