package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

// buildFilter renders the shared WHERE clause for request listings.
func buildFilter(filter request.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func updateDecision(ctx context.Context, q database.Querier, table string, h request.Header) error {
	query := `
		UPDATE ` + table + `
		SET status = $1, approver_id = $2, approver_comment = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`
	commandTag, err := q.Exec(ctx, query, h.Status, h.ApproverID, h.ApproverComment, h.DecidedAt, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s decision: %w", table, err)
	}
	if commandTag.RowsAffected() != 1 {
		return request.ErrAlreadyProcessed
	}
	return nil
}

type leaveRequestRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewLeaveRequestRepository(db *database.DB, loc *time.Location) request.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db, loc: loc}
}

const leaveColumns = `
	id, employee_id, leave_date, reason, status,
	approver_id, approver_comment, decided_at, created_at, updated_at
`

func (r *leaveRequestRepositoryImpl) scan(row pgx.Row) (request.LeaveRequest, error) {
	var lr request.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveDate, &lr.Reason, &lr.Status,
		&lr.ApproverID, &lr.ApproverComment, &lr.DecidedAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return request.LeaveRequest{}, err
	}
	lr.Kind = request.KindLeave
	lr.LeaveDate = inLocation(lr.LeaveDate, r.loc)
	return lr, nil
}

// Create implements request.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr request.LeaveRequest) (request.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if lr.ID == "" {
		id, err := newID()
		if err != nil {
			return request.LeaveRequest{}, err
		}
		lr.ID = id
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_date, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $6)
	`
	if _, err := q.Exec(ctx, query, lr.ID, lr.EmployeeID, dateParam(lr.LeaveDate), lr.Reason, lr.Status, lr.CreatedAt); err != nil {
		return request.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return lr, nil
}

// GetByID implements request.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (request.LeaveRequest, error) {
	if !validator.IsValidUUID(id) {
		return request.LeaveRequest{}, request.ErrRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`
	lr, err := r.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.LeaveRequest{}, request.ErrRequestNotFound
		}
		return request.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// UpdateDecision implements request.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, h request.Header) error {
	return updateDecision(ctx, GetQuerier(ctx, r.db), "leave_requests", h)
}

// List implements request.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter request.Filter) ([]request.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildFilter(filter)
	query := `SELECT ` + leaveColumns + ` FROM leave_requests ` + where + ` ORDER BY created_at DESC`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []request.LeaveRequest
	for rows.Next() {
		lr, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// ExistsActiveForDate implements request.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ExistsActiveForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND leave_date = $2::date AND status <> 'rejected'
		)
	`
	if err := q.QueryRow(ctx, query, employeeID, dateParam(date)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave requests: %w", err)
	}
	return exists, nil
}

type adjustmentRequestRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewAdjustmentRequestRepository(db *database.DB, loc *time.Location) request.AdjustmentRequestRepository {
	return &adjustmentRequestRepositoryImpl{db: db, loc: loc}
}

const adjustmentColumns = `
	id, employee_id, target_date, corrected_in, corrected_out, reason, status,
	approver_id, approver_comment, decided_at, created_at, updated_at
`

func (r *adjustmentRequestRepositoryImpl) scan(row pgx.Row) (request.AdjustmentRequest, error) {
	var ar request.AdjustmentRequest
	err := row.Scan(
		&ar.ID, &ar.EmployeeID, &ar.TargetDate, &ar.CorrectedIn, &ar.CorrectedOut, &ar.Reason, &ar.Status,
		&ar.ApproverID, &ar.ApproverComment, &ar.DecidedAt, &ar.CreatedAt, &ar.UpdatedAt,
	)
	if err != nil {
		return request.AdjustmentRequest{}, err
	}
	ar.Kind = request.KindAdjustment
	ar.TargetDate = inLocation(ar.TargetDate, r.loc)
	return ar, nil
}

// Create implements request.AdjustmentRequestRepository.
func (r *adjustmentRequestRepositoryImpl) Create(ctx context.Context, ar request.AdjustmentRequest) (request.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	if ar.ID == "" {
		id, err := newID()
		if err != nil {
			return request.AdjustmentRequest{}, err
		}
		ar.ID = id
	}

	query := `
		INSERT INTO adjustment_requests (
			id, employee_id, target_date, corrected_in, corrected_out, reason, status, created_at, updated_at
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $8)
	`
	_, err := q.Exec(ctx, query,
		ar.ID, ar.EmployeeID, dateParam(ar.TargetDate), ar.CorrectedIn, ar.CorrectedOut,
		ar.Reason, ar.Status, ar.CreatedAt,
	)
	if err != nil {
		return request.AdjustmentRequest{}, fmt.Errorf("failed to create adjustment request: %w", err)
	}
	return ar, nil
}

// GetByID implements request.AdjustmentRequestRepository.
func (r *adjustmentRequestRepositoryImpl) GetByID(ctx context.Context, id string) (request.AdjustmentRequest, error) {
	if !validator.IsValidUUID(id) {
		return request.AdjustmentRequest{}, request.ErrRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests WHERE id = $1`
	ar, err := r.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.AdjustmentRequest{}, request.ErrRequestNotFound
		}
		return request.AdjustmentRequest{}, fmt.Errorf("failed to get adjustment request: %w", err)
	}
	return ar, nil
}

// UpdateDecision implements request.AdjustmentRequestRepository.
func (r *adjustmentRequestRepositoryImpl) UpdateDecision(ctx context.Context, h request.Header) error {
	return updateDecision(ctx, GetQuerier(ctx, r.db), "adjustment_requests", h)
}

// List implements request.AdjustmentRequestRepository.
func (r *adjustmentRequestRepositoryImpl) List(ctx context.Context, filter request.Filter) ([]request.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildFilter(filter)
	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests ` + where + ` ORDER BY created_at DESC`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests: %w", err)
	}
	defer rows.Close()

	var requests []request.AdjustmentRequest
	for rows.Next() {
		ar, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment request: %w", err)
		}
		requests = append(requests, ar)
	}
	return requests, rows.Err()
}

// ExistsPendingForDate implements request.AdjustmentRequestRepository.
func (r *adjustmentRequestRepositoryImpl) ExistsPendingForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM adjustment_requests
			WHERE employee_id = $1 AND target_date = $2::date AND status = 'pending'
		)
	`
	if err := q.QueryRow(ctx, query, employeeID, dateParam(date)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check adjustment requests: %w", err)
	}
	return exists, nil
}
