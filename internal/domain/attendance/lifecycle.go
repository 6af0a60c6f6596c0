package attendance

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

// ClockIn opens the record for date at now. existing is the stored record for
// that date, or nil. date must be today in now's business timezone.
func ClockIn(existing *Record, employeeID string, date, now time.Time, s schedule.ShiftSchedule) (Record, error) {
	if !timeutil.SameDate(date, now.In(date.Location())) {
		return Record{}, ErrClockInNotToday
	}

	rec := Record{EmployeeID: employeeID, Date: date, CreatedAt: now}
	if existing != nil {
		if existing.ClockIn != nil {
			return Record{}, ErrAlreadyClockedIn
		}
		if existing.Status == DayStatusPaidLeave {
			return Record{}, ErrOnPaidLeave
		}
		if existing.Fixed {
			return Record{}, ErrFixedAttendance
		}
		rec = *existing
	}

	in := now
	rec.ClockIn = &in
	rec.ClockOut = nil
	recompute(&rec, s)
	rec.UpdatedAt = now
	return rec, nil
}

// ClockOut closes an OPEN record at now.
func ClockOut(existing *Record, now time.Time, s schedule.ShiftSchedule) (Record, error) {
	if existing == nil || existing.ClockIn == nil {
		return Record{}, ErrNotClockedIn
	}
	if existing.ClockOut != nil || existing.Fixed {
		return Record{}, ErrAlreadyClockedOut
	}
	if !now.After(*existing.ClockIn) {
		return Record{}, ErrClockOutBeforeClockIn
	}

	rec := *existing
	out := now
	rec.ClockOut = &out
	recompute(&rec, s)
	rec.UpdatedAt = now
	return rec, nil
}

// ApplyAdjustment overwrites the punches of a non-fixed record. A nil corrected
// value keeps the current punch. existing may be nil when the day was never recorded.
// Paid leave days are rejected; the leave day would otherwise be consumed without refund.
func ApplyAdjustment(existing *Record, employeeID string, date time.Time, correctedIn, correctedOut *time.Time, now time.Time, s schedule.ShiftSchedule) (Record, error) {
	if existing != nil && existing.Fixed {
		return Record{}, ErrFixedAttendance
	}
	if existing != nil && existing.Status == DayStatusPaidLeave {
		return Record{}, ErrOnPaidLeave
	}
	if correctedIn == nil && correctedOut == nil {
		return Record{}, ErrNoCorrection
	}

	rec := Record{EmployeeID: employeeID, Date: date, CreatedAt: now}
	if existing != nil {
		rec = *existing
	}
	if correctedIn != nil {
		in := *correctedIn
		rec.ClockIn = &in
	}
	if correctedOut != nil {
		out := *correctedOut
		rec.ClockOut = &out
	}

	if rec.ClockIn == nil && rec.ClockOut != nil {
		return Record{}, ErrClockOutWithoutClockIn
	}
	if rec.ClockIn != nil && rec.ClockOut != nil && !rec.ClockOut.After(*rec.ClockIn) {
		return Record{}, ErrClockOutBeforeClockIn
	}

	recompute(&rec, s)
	rec.UpdatedAt = now
	return rec, nil
}

// MarkPaidLeave sets the day status of date to paid leave. existing may be nil.
func MarkPaidLeave(existing *Record, employeeID string, date, now time.Time) (Record, error) {
	rec := Record{EmployeeID: employeeID, Date: date, CreatedAt: now}
	if existing != nil {
		if existing.Fixed {
			return Record{}, ErrFixedAttendance
		}
		if existing.ClockIn != nil {
			return Record{}, ErrAlreadyClockedIn
		}
		rec = *existing
	}
	rec.Status = DayStatusPaidLeave
	rec.Durations = Durations{}
	rec.UpdatedAt = now
	return rec, nil
}

// MarkAbsent creates an absent record for a day with no punches.
func MarkAbsent(employeeID string, date, now time.Time) Record {
	return Record{
		EmployeeID: employeeID,
		Date:       date,
		Status:     DayStatusAbsent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func recompute(rec *Record, s schedule.ShiftSchedule) {
	res := Calculate(rec.Date, rec.ClockIn, rec.ClockOut, s)
	rec.Durations = res.Durations
	rec.Status = res.Status
}
