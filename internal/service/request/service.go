package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

type RequestServiceImpl struct {
	tx database.Transactor
	request.LeaveRequestRepository
	request.AdjustmentRequestRepository
	attendance.AttendanceRepository
	attendance.SubmissionRepository
	employee.EmployeeRepository
	clock    timeutil.Clock
	schedule schedule.ShiftSchedule

	leaveFlow      request.Workflow[request.LeavePayload, *request.LeaveRequest]
	adjustmentFlow request.Workflow[request.AdjustmentPayload, *request.AdjustmentRequest]
}

func NewRequestService(
	tx database.Transactor,
	leaveRepo request.LeaveRequestRepository,
	adjustmentRepo request.AdjustmentRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	submissionRepo attendance.SubmissionRepository,
	employeeRepo employee.EmployeeRepository,
	clock timeutil.Clock,
	shift schedule.ShiftSchedule,
) request.RequestService {
	s := &RequestServiceImpl{
		tx:                          tx,
		LeaveRequestRepository:      leaveRepo,
		AdjustmentRequestRepository: adjustmentRepo,
		AttendanceRepository:        attendanceRepo,
		SubmissionRepository:        submissionRepo,
		EmployeeRepository:          employeeRepo,
		clock:                       clock,
		schedule:                    shift,
	}
	s.leaveFlow = request.NewLeaveWorkflow(s.applyLeave)
	s.adjustmentFlow = request.NewAdjustmentWorkflow(s.applyAdjustment)
	return s
}

// ensureOpenMonth returns ErrFixedAttendance when date's record is locked or its month was submitted.
func (s *RequestServiceImpl) ensureOpenMonth(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	if rec != nil && rec.Fixed {
		return nil, attendance.ErrFixedAttendance
	}
	submitted, err := s.SubmissionRepository.Exists(ctx, employeeID, timeutil.YearMonthOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to check monthly submission: %w", err)
	}
	if submitted {
		return nil, attendance.ErrFixedAttendance
	}
	return rec, nil
}

func (s *RequestServiceImpl) saveRecord(ctx context.Context, rec attendance.Record) error {
	if rec.ID == "" {
		_, err := s.AttendanceRepository.Create(ctx, rec)
		return err
	}
	return s.AttendanceRepository.Update(ctx, rec)
}

// applyLeave consumes one leave day and marks the leave date as paid leave.
func (s *RequestServiceImpl) applyLeave(ctx context.Context, lr *request.LeaveRequest) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, lr.EmployeeID)
	if err != nil {
		return err
	}
	if err := emp.ConsumeLeaveDay(); err != nil {
		return err
	}
	emp.UpdatedAt = s.clock.Now()
	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	existing, err := s.ensureOpenMonth(ctx, lr.EmployeeID, lr.LeaveDate)
	if err != nil {
		return err
	}
	rec, err := attendance.MarkPaidLeave(existing, lr.EmployeeID, lr.LeaveDate, s.clock.Now())
	if err != nil {
		return err
	}
	return s.saveRecord(ctx, rec)
}

// applyAdjustment overwrites the punches of the target date and recomputes its durations.
func (s *RequestServiceImpl) applyAdjustment(ctx context.Context, ar *request.AdjustmentRequest) error {
	existing, err := s.ensureOpenMonth(ctx, ar.EmployeeID, ar.TargetDate)
	if err != nil {
		return err
	}
	rec, err := attendance.ApplyAdjustment(existing, ar.EmployeeID, ar.TargetDate, ar.CorrectedIn, ar.CorrectedOut, s.clock.Now(), s.schedule)
	if err != nil {
		return err
	}
	return s.saveRecord(ctx, rec)
}

// RequestLeave implements request.RequestService.
func (s *RequestServiceImpl) RequestLeave(ctx context.Context, p auth.Principal, req request.CreateLeaveRequest) (request.RequestResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return request.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}
	loc := s.clock.Location()
	leaveDate, err := timeutil.ParseDate(req.LeaveDate, loc)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to parse leave date: %w", err)
	}

	var created request.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return err
		}

		lr, err := s.leaveFlow.Create(&p, request.LeavePayload{
			Employee:  emp,
			LeaveDate: leaveDate,
			Reason:    req.Reason,
			Today:     timeutil.Today(s.clock),
		}, s.clock.Now())
		if err != nil {
			return err
		}

		duplicate, err := s.LeaveRequestRepository.ExistsActiveForDate(ctx, p.EmployeeID, leaveDate)
		if err != nil {
			return fmt.Errorf("failed to check existing leave requests: %w", err)
		}
		if duplicate {
			return request.ErrDuplicateRequest
		}
		if _, err := s.ensureOpenMonth(ctx, p.EmployeeID, leaveDate); err != nil {
			return err
		}

		created, err = s.LeaveRequestRepository.Create(ctx, *lr)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	slog.Info("Leave request created", "request_id", created.ID, "employee_id", p.EmployeeID, "leave_date", req.LeaveDate)
	return request.LeaveToResponse(created), nil
}

// RequestAdjustment implements request.RequestService.
func (s *RequestServiceImpl) RequestAdjustment(ctx context.Context, p auth.Principal, req request.CreateAdjustmentRequest) (request.RequestResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return request.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}
	loc := s.clock.Location()
	targetDate, err := timeutil.ParseDate(req.TargetDate, loc)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to parse target date: %w", err)
	}
	correctedIn, err := placeOn(targetDate, req.CorrectedClockIn)
	if err != nil {
		return request.RequestResponse{}, err
	}
	correctedOut, err := placeOn(targetDate, req.CorrectedClockOut)
	if err != nil {
		return request.RequestResponse{}, err
	}

	ar, err := s.adjustmentFlow.Create(&p, request.AdjustmentPayload{
		TargetDate:   targetDate,
		CorrectedIn:  correctedIn,
		CorrectedOut: correctedOut,
		Reason:       req.Reason,
		Today:        timeutil.Today(s.clock),
	}, s.clock.Now())
	if err != nil {
		return request.RequestResponse{}, err
	}

	var created request.AdjustmentRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		duplicate, err := s.AdjustmentRequestRepository.ExistsPendingForDate(ctx, p.EmployeeID, targetDate)
		if err != nil {
			return fmt.Errorf("failed to check existing adjustment requests: %w", err)
		}
		if duplicate {
			return request.ErrDuplicateRequest
		}
		existing, err := s.ensureOpenMonth(ctx, p.EmployeeID, targetDate)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status == attendance.DayStatusPaidLeave {
			return attendance.ErrOnPaidLeave
		}

		created, err = s.AdjustmentRequestRepository.Create(ctx, *ar)
		if err != nil {
			return fmt.Errorf("failed to create adjustment request: %w", err)
		}
		return nil
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	slog.Info("Adjustment request created", "request_id", created.ID, "employee_id", p.EmployeeID, "target_date", req.TargetDate)
	return request.AdjustmentToResponse(created, loc), nil
}

func placeOn(date time.Time, hhmm *string) (*time.Time, error) {
	if hhmm == nil {
		return nil, nil
	}
	tod, err := timeutil.ParseTimeOfDay(*hhmm)
	if err != nil {
		return nil, err
	}
	t := timeutil.At(date, tod)
	return &t, nil
}

// decision is the request found under an id, of either kind.
type decision struct {
	leave      *request.LeaveRequest
	adjustment *request.AdjustmentRequest
}

func (s *RequestServiceImpl) find(ctx context.Context, id string) (decision, error) {
	lr, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err == nil {
		return decision{leave: &lr}, nil
	}
	if !errors.Is(err, request.ErrRequestNotFound) {
		return decision{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	ar, err := s.AdjustmentRequestRepository.GetByID(ctx, id)
	if err != nil {
		return decision{}, err
	}
	return decision{adjustment: &ar}, nil
}

func (d decision) response(loc *time.Location) request.RequestResponse {
	if d.leave != nil {
		return request.LeaveToResponse(*d.leave)
	}
	return request.AdjustmentToResponse(*d.adjustment, loc)
}

// Approve implements request.RequestService.
func (s *RequestServiceImpl) Approve(ctx context.Context, p auth.Principal, id string, req request.ApproveRequest) (request.RequestResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleAdmin); err != nil {
		return request.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}
	now := s.clock.Now()

	var d decision
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		d, err = s.find(ctx, id)
		if err != nil {
			return err
		}

		if d.leave != nil {
			if err := s.leaveFlow.Approve(ctx, &p, d.leave, req.Comment, now); err != nil {
				return err
			}
			return s.LeaveRequestRepository.UpdateDecision(ctx, d.leave.Header)
		}
		if err := s.adjustmentFlow.Approve(ctx, &p, d.adjustment, req.Comment, now); err != nil {
			return err
		}
		return s.AdjustmentRequestRepository.UpdateDecision(ctx, d.adjustment.Header)
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	resp := d.response(s.clock.Location())
	slog.Info("Request approved", "request_id", id, "kind", resp.Kind, "approver_id", p.EmployeeID)
	return resp, nil
}

// Reject implements request.RequestService.
func (s *RequestServiceImpl) Reject(ctx context.Context, p auth.Principal, id string, req request.RejectRequest) (request.RequestResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleAdmin); err != nil {
		return request.RequestResponse{}, err
	}
	now := s.clock.Now()

	var d decision
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		d, err = s.find(ctx, id)
		if err != nil {
			return err
		}

		if d.leave != nil {
			if err := s.leaveFlow.Reject(&p, d.leave, req.Reason, now); err != nil {
				return err
			}
			return s.LeaveRequestRepository.UpdateDecision(ctx, d.leave.Header)
		}
		if err := s.adjustmentFlow.Reject(&p, d.adjustment, req.Reason, now); err != nil {
			return err
		}
		return s.AdjustmentRequestRepository.UpdateDecision(ctx, d.adjustment.Header)
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	resp := d.response(s.clock.Location())
	slog.Info("Request rejected", "request_id", id, "kind", resp.Kind, "approver_id", p.EmployeeID)
	return resp, nil
}

func (s *RequestServiceImpl) list(ctx context.Context, employeeID string, f request.ListFilter) ([]request.RequestResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	filter := f.ToFilter(employeeID)
	loc := s.clock.Location()

	type entry struct {
		createdAt time.Time
		resp      request.RequestResponse
	}
	var entries []entry

	if f.IncludesLeave() {
		leaves, err := s.LeaveRequestRepository.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list leave requests: %w", err)
		}
		for _, lr := range leaves {
			entries = append(entries, entry{lr.CreatedAt, request.LeaveToResponse(lr)})
		}
	}
	if f.IncludesAdjustment() {
		adjustments, err := s.AdjustmentRequestRepository.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustment requests: %w", err)
		}
		for _, ar := range adjustments {
			entries = append(entries, entry{ar.CreatedAt, request.AdjustmentToResponse(ar, loc)})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].createdAt.After(entries[j].createdAt) })
	out := make([]request.RequestResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.resp)
	}
	return out, nil
}

// ListMyRequests implements request.RequestService.
func (s *RequestServiceImpl) ListMyRequests(ctx context.Context, p auth.Principal, f request.ListFilter) ([]request.RequestResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleEmployee); err != nil {
		return nil, err
	}
	return s.list(ctx, p.EmployeeID, f)
}

// ListRequests implements request.RequestService.
func (s *RequestServiceImpl) ListRequests(ctx context.Context, p auth.Principal, f request.ListFilter) ([]request.RequestResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return s.list(ctx, "", f)
}
