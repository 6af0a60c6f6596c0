package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	attendance.SubmissionRepository
	employee.EmployeeRepository
	clock    timeutil.Clock
	schedule schedule.ShiftSchedule
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	submissionRepo attendance.SubmissionRepository,
	employeeRepo employee.EmployeeRepository,
	clock timeutil.Clock,
	shift schedule.ShiftSchedule,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		SubmissionRepository: submissionRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clock,
		schedule:             shift,
	}
}

// save inserts rec when it has no id yet, otherwise updates it.
func (a *AttendanceServiceImpl) save(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	if rec.ID == "" {
		return a.AttendanceRepository.Create(ctx, rec)
	}
	if err := a.AttendanceRepository.Update(ctx, rec); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, p auth.Principal) (attendance.RecordResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return attendance.RecordResponse{}, err
	}
	now := a.clock.Now()
	today := timeutil.Today(a.clock)

	var saved attendance.Record
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, p.EmployeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if existing == nil {
			submitted, err := a.SubmissionRepository.Exists(ctx, p.EmployeeID, timeutil.YearMonthOf(today))
			if err != nil {
				return fmt.Errorf("failed to check monthly submission: %w", err)
			}
			if submitted {
				return attendance.ErrFixedAttendance
			}
		}

		rec, err := attendance.ClockIn(existing, p.EmployeeID, today, now, a.schedule)
		if err != nil {
			return err
		}
		saved, err = a.save(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Employee clocked in", "employee_id", p.EmployeeID, "date", today.Format(timeutil.DateLayout), "late_minutes", saved.Durations.LateMinutes)
	return attendance.ToRecordResponse(saved, a.clock.Location()), nil
}

// ClockOut implements attendance.AttendanceService.
// A shift still open from the previous day is closed when today has no open record.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, p auth.Principal) (attendance.RecordResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return attendance.RecordResponse{}, err
	}
	now := a.clock.Now()
	today := timeutil.Today(a.clock)

	var saved attendance.Record
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, p.EmployeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if rec == nil || rec.State() != attendance.StateOpen {
			prev, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, p.EmployeeID, today.AddDate(0, 0, -1))
			if err != nil {
				return fmt.Errorf("failed to get previous attendance: %w", err)
			}
			if prev != nil && prev.State() == attendance.StateOpen {
				rec = prev
			}
		}

		closed, err := attendance.ClockOut(rec, now, a.schedule)
		if err != nil {
			return err
		}
		saved, err = a.save(ctx, closed)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Employee clocked out", "employee_id", p.EmployeeID, "date", saved.Date.Format(timeutil.DateLayout), "overtime_minutes", saved.Durations.OvertimeMinutes)
	return attendance.ToRecordResponse(saved, a.clock.Location()), nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, p auth.Principal, employeeID string, ym timeutil.YearMonth) (attendance.HistoryResponse, error) {
	if employeeID == "" {
		employeeID = p.EmployeeID
	}
	if err := auth.CanAccessOwn(&p, employeeID); err != nil {
		return attendance.HistoryResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.HistoryResponse{}, err
	}
	records, err := a.AttendanceRepository.ListByEmployeeAndMonth(ctx, employeeID, ym)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	submitted, err := a.SubmissionRepository.Exists(ctx, employeeID, ym)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to check monthly submission: %w", err)
	}

	resp := attendance.HistoryResponse{
		EmployeeID: employeeID,
		Month:      ym.String(),
		Submitted:  submitted,
		Records:    make([]attendance.RecordResponse, 0, len(records)),
		Summary:    attendance.Summarize(records),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, attendance.ToRecordResponse(rec, a.clock.Location()))
	}
	return resp, nil
}

func (a *AttendanceServiceImpl) eligibility(ctx context.Context, employeeID string, ym timeutil.YearMonth) (attendance.Eligibility, error) {
	records, err := a.AttendanceRepository.ListByEmployeeAndMonth(ctx, employeeID, ym)
	if err != nil {
		return attendance.Eligibility{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	submitted, err := a.SubmissionRepository.Exists(ctx, employeeID, ym)
	if err != nil {
		return attendance.Eligibility{}, fmt.Errorf("failed to check monthly submission: %w", err)
	}
	return attendance.CheckSubmission(records, ym, timeutil.Today(a.clock), submitted), nil
}

// CanSubmitMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CanSubmitMonth(ctx context.Context, p auth.Principal, ym timeutil.YearMonth) (attendance.EligibilityResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return attendance.EligibilityResponse{}, err
	}

	e, err := a.eligibility(ctx, p.EmployeeID, ym)
	if err != nil {
		return attendance.EligibilityResponse{}, err
	}

	resp := attendance.EligibilityResponse{
		Month:    ym.String(),
		Eligible: e.Eligible,
		Code:     apperror.CodeOf(e.Err),
		Reason:   e.Reason(),
	}
	for _, d := range e.MissingDates {
		resp.MissingDates = append(resp.MissingDates, d.Format(timeutil.DateLayout))
	}
	return resp, nil
}

// SubmitMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitMonth(ctx context.Context, p auth.Principal, ym timeutil.YearMonth) (attendance.SubmissionResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return attendance.SubmissionResponse{}, err
	}
	now := a.clock.Now()

	var locked int64
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := a.eligibility(ctx, p.EmployeeID, ym)
		if err != nil {
			return err
		}
		if !e.Eligible {
			return e.Err
		}

		locked, err = a.AttendanceRepository.FixMonth(ctx, p.EmployeeID, ym)
		if err != nil {
			return err
		}
		_, err = a.SubmissionRepository.Create(ctx, attendance.MonthlySubmission{
			EmployeeID:  p.EmployeeID,
			YearMonth:   ym.String(),
			SubmittedAt: now,
		})
		return err
	})
	if err != nil {
		return attendance.SubmissionResponse{}, err
	}

	slog.Info("Monthly attendance submitted", "employee_id", p.EmployeeID, "month", ym.String(), "locked_records", locked)
	return attendance.SubmissionResponse{
		Month:         ym.String(),
		LockedRecords: locked,
		SubmittedAt:   now.Format(time.RFC3339),
	}, nil
}

// MarkAbsentDays implements attendance.AttendanceService.
// It covers the business days of upTo's month, from each employee's hire date up to upTo.
func (a *AttendanceServiceImpl) MarkAbsentDays(ctx context.Context, upTo time.Time) (int, error) {
	upTo = timeutil.DateOf(upTo, a.clock.Location())
	ym := timeutil.YearMonthOf(upTo)
	now := a.clock.Now()

	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	created := 0
	for _, e := range employees {
		submitted, err := a.SubmissionRepository.Exists(ctx, e.ID, ym)
		if err != nil {
			return created, fmt.Errorf("failed to check monthly submission: %w", err)
		}
		if submitted {
			continue
		}

		hired := timeutil.DateOf(e.HiredAt, a.clock.Location())
		for _, day := range timeutil.BusinessDays(ym, upTo) {
			if day.Before(hired) {
				continue
			}
			existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, e.ID, day)
			if err != nil {
				return created, fmt.Errorf("failed to get attendance: %w", err)
			}
			if existing != nil {
				continue
			}
			if _, err := a.AttendanceRepository.Create(ctx, attendance.MarkAbsent(e.ID, day, now)); err != nil {
				return created, fmt.Errorf("failed to create absent record: %w", err)
			}
			created++
		}
	}

	return created, nil
}
