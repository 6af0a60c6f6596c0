package attendance

import (
	"time"
)

// Record is one employee's attendance for one calendar date.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Durations  Durations
	Status     DayStatus
	Fixed      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type DayStatus string

const (
	DayStatusNormal    DayStatus = "normal"
	DayStatusPaidLeave DayStatus = "paid_leave"
	DayStatusAbsent    DayStatus = "absent"
)

type State string

const (
	StateUnrecorded State = "UNRECORDED"
	StateOpen       State = "OPEN"
	StateClosed     State = "CLOSED"
	StateFixed      State = "FIXED"
)

func (r Record) State() State {
	switch {
	case r.Fixed:
		return StateFixed
	case r.ClockIn != nil && r.ClockOut != nil:
		return StateClosed
	case r.ClockIn != nil:
		return StateOpen
	default:
		return StateUnrecorded
	}
}

// IsComplete reports whether the record satisfies the monthly submission gate.
func (r Record) IsComplete() bool {
	if r.Status == DayStatusPaidLeave {
		return true
	}
	return r.ClockIn != nil && r.ClockOut != nil
}

// Durations are the minute counts derived from a punch pair.
type Durations struct {
	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	NightShiftMinutes int
	WorkingMinutes    int
}

// MonthlySubmission marks that every record of the employee in YearMonth is locked.
type MonthlySubmission struct {
	ID          string
	EmployeeID  string
	YearMonth   string
	SubmittedAt time.Time
}
