package attendance

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs
// ========================================

type MonthRequest struct {
	Month string `json:"month" validate:"required,yearmonth"`
}

func (r *MonthRequest) Validate() error {
	return validator.Struct(r)
}

// YearMonth must only be called after Validate succeeded.
func (r MonthRequest) YearMonth() timeutil.YearMonth {
	ym, _ := timeutil.ParseYearMonth(r.Month)
	return ym
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	ClockIn           *string `json:"clock_in"`
	ClockOut          *string `json:"clock_out"`
	LateMinutes       int     `json:"late_minutes"`
	EarlyLeaveMinutes int     `json:"early_leave_minutes"`
	OvertimeMinutes   int     `json:"overtime_minutes"`
	NightShiftMinutes int     `json:"night_shift_minutes"`
	WorkingMinutes    int     `json:"working_minutes"`
	Status            string  `json:"status"`
	State             string  `json:"state"`
	Fixed             bool    `json:"fixed"`
}

func ToRecordResponse(r Record, loc *time.Location) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		Date:              r.Date.Format(timeutil.DateLayout),
		ClockIn:           timeutil.FormatClock(r.ClockIn, loc),
		ClockOut:          timeutil.FormatClock(r.ClockOut, loc),
		LateMinutes:       r.Durations.LateMinutes,
		EarlyLeaveMinutes: r.Durations.EarlyLeaveMinutes,
		OvertimeMinutes:   r.Durations.OvertimeMinutes,
		NightShiftMinutes: r.Durations.NightShiftMinutes,
		WorkingMinutes:    r.Durations.WorkingMinutes,
		Status:            string(r.Status),
		State:             string(r.State()),
		Fixed:             r.Fixed,
	}
}

type Summary struct {
	WorkingDays       int             `json:"working_days"`
	PaidLeaveDays     int             `json:"paid_leave_days"`
	AbsentDays        int             `json:"absent_days"`
	WorkingMinutes    int             `json:"working_minutes"`
	WorkingHours      decimal.Decimal `json:"working_hours"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	OvertimeHours     decimal.Decimal `json:"overtime_hours"`
	NightShiftMinutes int             `json:"night_shift_minutes"`
	LateMinutes       int             `json:"late_minutes"`
	EarlyLeaveMinutes int             `json:"early_leave_minutes"`
}

var minutesPerHour = decimal.NewFromInt(60)

// Summarize totals records. Hours are rounded to two decimal places.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Status {
		case DayStatusPaidLeave:
			s.PaidLeaveDays++
		case DayStatusAbsent:
			s.AbsentDays++
		default:
			if r.ClockIn != nil {
				s.WorkingDays++
			}
		}
		s.WorkingMinutes += r.Durations.WorkingMinutes
		s.OvertimeMinutes += r.Durations.OvertimeMinutes
		s.NightShiftMinutes += r.Durations.NightShiftMinutes
		s.LateMinutes += r.Durations.LateMinutes
		s.EarlyLeaveMinutes += r.Durations.EarlyLeaveMinutes
	}
	s.WorkingHours = decimal.NewFromInt(int64(s.WorkingMinutes)).Div(minutesPerHour).Round(2)
	s.OvertimeHours = decimal.NewFromInt(int64(s.OvertimeMinutes)).Div(minutesPerHour).Round(2)
	return s
}

type HistoryResponse struct {
	EmployeeID string           `json:"employee_id"`
	Month      string           `json:"month"`
	Submitted  bool             `json:"submitted"`
	Records    []RecordResponse `json:"records"`
	Summary    Summary          `json:"summary"`
}

type EligibilityResponse struct {
	Month        string   `json:"month"`
	Eligible     bool     `json:"eligible"`
	Code         string   `json:"code,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	MissingDates []string `json:"missing_dates,omitempty"`
}

type SubmissionResponse struct {
	Month         string `json:"month"`
	LockedRecords int64  `json:"locked_records"`
	SubmittedAt   string `json:"submitted_at"`
}
