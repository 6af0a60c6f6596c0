package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db  *database.DB
	loc *time.Location
}

// NewAttendanceRepository returns a repository whose record dates are midnight in loc.
func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, loc: loc}
}

const recordColumns = `
	id, employee_id, date, clock_in, clock_out,
	late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes, working_minutes,
	status, fixed, created_at, updated_at
`

func (a *attendanceRepository) scan(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut,
		&rec.Durations.LateMinutes, &rec.Durations.EarlyLeaveMinutes, &rec.Durations.OvertimeMinutes,
		&rec.Durations.NightShiftMinutes, &rec.Durations.WorkingMinutes,
		&rec.Status, &rec.Fixed, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Date = inLocation(rec.Date, a.loc)
	return rec, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		id, err := newID()
		if err != nil {
			return attendance.Record{}, err
		}
		rec.ID = id
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, clock_in, clock_out,
			late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes, working_minutes,
			status, fixed
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, dateParam(rec.Date), rec.ClockIn, rec.ClockOut,
		rec.Durations.LateMinutes, rec.Durations.EarlyLeaveMinutes, rec.Durations.OvertimeMinutes,
		rec.Durations.NightShiftMinutes, rec.Durations.WorkingMinutes,
		rec.Status, rec.Fixed,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2::date`
	rec, err := a.scan(q.QueryRow(ctx, query, employeeID, dateParam(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
// Fixed rows are never rewritten.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_in = $1, clock_out = $2,
			late_minutes = $3, early_leave_minutes = $4, overtime_minutes = $5,
			night_shift_minutes = $6, working_minutes = $7,
			status = $8, updated_at = NOW()
		WHERE id = $9 AND fixed = FALSE
	`
	commandTag, err := q.Exec(ctx, query,
		rec.ClockIn, rec.ClockOut,
		rec.Durations.LateMinutes, rec.Durations.EarlyLeaveMinutes, rec.Durations.OvertimeMinutes,
		rec.Durations.NightShiftMinutes, rec.Durations.WorkingMinutes,
		rec.Status, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrFixedAttendance
	}
	return nil
}

// ListByEmployeeAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, ym timeutil.YearMonth) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, employeeID, dateParam(ym.FirstDay(a.loc)), dateParam(ym.LastDay(a.loc)))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := a.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FixMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) FixMonth(ctx context.Context, employeeID string, ym timeutil.YearMonth) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET fixed = TRUE, updated_at = NOW()
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date AND fixed = FALSE
	`
	tag, err := q.Exec(ctx, query, employeeID, dateParam(ym.FirstDay(a.loc)), dateParam(ym.LastDay(a.loc)))
	if err != nil {
		return 0, fmt.Errorf("failed to fix attendance month: %w", err)
	}
	return tag.RowsAffected(), nil
}

type submissionRepository struct {
	db *database.DB
}

func NewSubmissionRepository(db *database.DB) attendance.SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create implements attendance.SubmissionRepository.
func (s *submissionRepository) Create(ctx context.Context, sub attendance.MonthlySubmission) (attendance.MonthlySubmission, error) {
	q := GetQuerier(ctx, s.db)

	if sub.ID == "" {
		id, err := newID()
		if err != nil {
			return attendance.MonthlySubmission{}, err
		}
		sub.ID = id
	}

	query := `
		INSERT INTO monthly_submissions (id, employee_id, year_month, submitted_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := q.Exec(ctx, query, sub.ID, sub.EmployeeID, sub.YearMonth, sub.SubmittedAt); err != nil {
		if isUniqueViolation(err) {
			return attendance.MonthlySubmission{}, attendance.ErrAlreadySubmitted
		}
		return attendance.MonthlySubmission{}, fmt.Errorf("failed to create monthly submission: %w", err)
	}
	return sub, nil
}

// Exists implements attendance.SubmissionRepository.
func (s *submissionRepository) Exists(ctx context.Context, employeeID string, ym timeutil.YearMonth) (bool, error) {
	q := GetQuerier(ctx, s.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM monthly_submissions WHERE employee_id = $1 AND year_month = $2)`
	if err := q.QueryRow(ctx, query, employeeID, ym.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check monthly submission: %w", err)
	}
	return exists, nil
}
