package schedule

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

const minutesPerDay = 24 * 60

// ShiftSchedule is the working-time configuration a day is evaluated against.
// Windows whose end is not after their start wrap past midnight.
type ShiftSchedule struct {
	StandardStart        timeutil.TimeOfDay
	StandardEnd          timeutil.TimeOfDay
	BreakStart           timeutil.TimeOfDay
	BreakEnd             timeutil.TimeOfDay
	NightStart           timeutil.TimeOfDay
	NightEnd             timeutil.TimeOfDay
	StandardDailyMinutes int
}

// Default is the schedule used when nothing is configured: 09:00-18:00, lunch 12:00-13:00,
// night window 22:00-05:00, 8 hour standard day.
func Default() ShiftSchedule {
	return ShiftSchedule{
		StandardStart:        timeutil.TimeOfDay{Hour: 9},
		StandardEnd:          timeutil.TimeOfDay{Hour: 18},
		BreakStart:           timeutil.TimeOfDay{Hour: 12},
		BreakEnd:             timeutil.TimeOfDay{Hour: 13},
		NightStart:           timeutil.TimeOfDay{Hour: 22},
		NightEnd:             timeutil.TimeOfDay{Hour: 5},
		StandardDailyMinutes: 480,
	}
}

// BreakMinutes returns the length of the break window.
func (s ShiftSchedule) BreakMinutes() int {
	return windowMinutes(s.BreakStart, s.BreakEnd)
}

// NightWraps reports whether the night window crosses midnight.
func (s ShiftSchedule) NightWraps() bool {
	return s.NightEnd.Minutes() <= s.NightStart.Minutes()
}

// EndsNextDay reports whether the standard end falls on the day after the standard start.
func (s ShiftSchedule) EndsNextDay() bool {
	return s.StandardEnd.Minutes() <= s.StandardStart.Minutes()
}

func (s ShiftSchedule) Validate() error {
	if s.StandardStart == s.StandardEnd {
		return ErrEmptyShift
	}
	if s.NightStart == s.NightEnd {
		return ErrEmptyNightWindow
	}
	if s.StandardDailyMinutes <= 0 || s.StandardDailyMinutes > minutesPerDay {
		return ErrInvalidStandardMinutes
	}
	if s.BreakMinutes() >= windowMinutes(s.StandardStart, s.StandardEnd) {
		return ErrBreakTooLong
	}
	return nil
}

func windowMinutes(start, end timeutil.TimeOfDay) int {
	return ((end.Minutes()-start.Minutes())%minutesPerDay + minutesPerDay) % minutesPerDay
}
