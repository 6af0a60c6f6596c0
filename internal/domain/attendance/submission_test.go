package attendance

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
)

func closedRecord(d int) Record {
	date := day(2026, 10, d)
	return Record{EmployeeID: "e1", Date: date, ClockIn: at(date, 9, 0), ClockOut: at(date, 18, 0), Status: DayStatusNormal}
}

func TestCheckSubmission(t *testing.T) {
	ym := timeutil.YearMonth{Year: 2026, Month: 10}
	// Business days up to Friday 2026-10-09: 1, 2, 5, 6, 7, 8, 9.
	today := day(2026, 10, 9)

	full := []Record{closedRecord(1), closedRecord(2), closedRecord(5), closedRecord(6), closedRecord(7), closedRecord(8), closedRecord(9)}

	t.Run("eligible when every business day is complete", func(t *testing.T) {
		e := CheckSubmission(full, ym, today, false)
		assert.True(t, e.Eligible)
		assert.NoError(t, e.Err)
	})

	t.Run("paid leave counts as complete", func(t *testing.T) {
		records := append([]Record{}, full...)
		records[3] = Record{EmployeeID: "e1", Date: day(2026, 10, 6), Status: DayStatusPaidLeave}
		e := CheckSubmission(records, ym, today, false)
		assert.True(t, e.Eligible)
	})

	t.Run("gap on a weekday", func(t *testing.T) {
		records := append([]Record{}, full[:2]...)
		records = append(records, full[3:]...)
		e := CheckSubmission(records, ym, today, false)
		assert.False(t, e.Eligible)
		assert.ErrorIs(t, e.Err, ErrIncompleteAttendance)
		if assert.Len(t, e.MissingDates, 1) {
			assert.Equal(t, "2026-10-05", e.MissingDates[0].Format(timeutil.DateLayout))
		}
	})

	t.Run("open record is a gap", func(t *testing.T) {
		records := append([]Record{}, full...)
		records[6].ClockOut = nil
		e := CheckSubmission(records, ym, today, false)
		assert.ErrorIs(t, e.Err, ErrIncompleteAttendance)
	})

	t.Run("open record on a weekend blocks submission", func(t *testing.T) {
		saturday := day(2026, 10, 3)
		records := append([]Record{}, full...)
		records = append(records, Record{EmployeeID: "e1", Date: saturday, ClockIn: at(saturday, 21, 0), Status: DayStatusNormal})
		e := CheckSubmission(records, ym, today, false)
		assert.False(t, e.Eligible)
		assert.ErrorIs(t, e.Err, ErrIncompleteAttendance)
		if assert.Len(t, e.MissingDates, 1) {
			assert.Equal(t, "2026-10-03", e.MissingDates[0].Format(timeutil.DateLayout))
		}
	})

	t.Run("closed weekend record is fine", func(t *testing.T) {
		records := append([]Record{}, full...)
		records = append(records, closedRecord(3))
		e := CheckSubmission(records, ym, today, false)
		assert.True(t, e.Eligible)
	})

	t.Run("absent record is a gap", func(t *testing.T) {
		records := append([]Record{}, full...)
		records[0] = MarkAbsent("e1", day(2026, 10, 1), *at(today, 0, 5))
		e := CheckSubmission(records, ym, today, false)
		assert.ErrorIs(t, e.Err, ErrIncompleteAttendance)
	})

	t.Run("weekends are not required", func(t *testing.T) {
		e := CheckSubmission(full, ym, day(2026, 10, 11), false)
		assert.True(t, e.Eligible)
	})

	t.Run("already submitted", func(t *testing.T) {
		e := CheckSubmission(full, ym, today, true)
		assert.ErrorIs(t, e.Err, ErrAlreadySubmitted)

		records := append([]Record{}, full...)
		records[0].Fixed = true
		e = CheckSubmission(records, ym, today, false)
		assert.ErrorIs(t, e.Err, ErrAlreadySubmitted)
	})

	t.Run("future month", func(t *testing.T) {
		e := CheckSubmission(nil, timeutil.YearMonth{Year: 2026, Month: 11}, today, false)
		assert.ErrorIs(t, e.Err, ErrFutureMonth)
	})
}

func TestSummarize(t *testing.T) {
	d := day(2026, 10, 1)
	records := []Record{
		{Date: d, ClockIn: at(d, 9, 10), ClockOut: at(d, 18, 45), Status: DayStatusNormal, Durations: Durations{LateMinutes: 10, OvertimeMinutes: 35, WorkingMinutes: 515}},
		{Date: day(2026, 10, 2), Status: DayStatusPaidLeave},
		{Date: day(2026, 10, 5), Status: DayStatusAbsent},
	}

	s := Summarize(records)
	assert.Equal(t, 1, s.WorkingDays)
	assert.Equal(t, 1, s.PaidLeaveDays)
	assert.Equal(t, 1, s.AbsentDays)
	assert.Equal(t, "8.58", s.WorkingHours.StringFixed(2))
	assert.Equal(t, "0.58", s.OvertimeHours.StringFixed(2))
}
