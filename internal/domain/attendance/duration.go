package attendance

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

// Result is the output of Calculate.
type Result struct {
	Durations
	Status DayStatus
}

// Calculate derives the minute counts and day status for date from the punches.
// It is the only place these values are computed.
func Calculate(date time.Time, clockIn, clockOut *time.Time, s schedule.ShiftSchedule) Result {
	if clockIn == nil && clockOut == nil {
		return Result{Status: DayStatusAbsent}
	}

	res := Result{Status: DayStatusNormal}
	start, end := shiftBounds(date, s)

	if clockIn != nil {
		res.LateMinutes = clampZero(timeutil.MinutesBetween(start, *clockIn))
	}
	if clockOut != nil {
		res.EarlyLeaveMinutes = clampZero(timeutil.MinutesBetween(*clockOut, end))
	}
	if clockIn == nil || clockOut == nil || !clockOut.After(*clockIn) {
		return res
	}

	worked := clockOut.Sub(*clockIn)
	breakDur := time.Duration(s.BreakMinutes()) * time.Minute
	standard := time.Duration(s.StandardDailyMinutes) * time.Minute

	res.WorkingMinutes = clampZero(int((worked - breakDur) / time.Minute))
	res.OvertimeMinutes = clampZero(int((worked - breakDur - standard) / time.Minute))
	res.NightShiftMinutes = int(nightOverlap(*clockIn, *clockOut, date, s) / time.Minute)
	return res
}

func shiftBounds(date time.Time, s schedule.ShiftSchedule) (time.Time, time.Time) {
	start := timeutil.At(date, s.StandardStart)
	end := timeutil.At(date, s.StandardEnd)
	if s.EndsNextDay() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// nightOverlap intersects [in, out) with the night windows anchored on the
// previous, same and next day of date.
func nightOverlap(in, out, date time.Time, s schedule.ShiftSchedule) time.Duration {
	var total time.Duration
	for offset := -1; offset <= 1; offset++ {
		day := date.AddDate(0, 0, offset)
		ws := timeutil.At(day, s.NightStart)
		we := timeutil.At(day, s.NightEnd)
		if s.NightWraps() {
			we = we.AddDate(0, 0, 1)
		}
		total += overlap(in, out, ws, we)
	}
	return total
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func clampZero(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes
}
