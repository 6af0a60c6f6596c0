package request

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

// Friday 2026-10-09 10:00 JST.
var now = time.Date(2026, 10, 9, 10, 0, 0, 0, jst)

type fixture struct {
	svc         request.RequestService
	records     attendance.AttendanceRepository
	submissions attendance.SubmissionRepository
	employees   employee.EmployeeRepository
	staff       auth.Principal
	admin       auth.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		records:     memory.NewAttendanceRepository(store),
		submissions: memory.NewSubmissionRepository(store),
		employees:   memory.NewEmployeeRepository(store),
	}
	f.svc = NewRequestService(
		store,
		memory.NewLeaveRequestRepository(store),
		memory.NewAdjustmentRequestRepository(store),
		f.records,
		f.submissions,
		f.employees,
		timeutil.FixedClock{At: now},
		schedule.Default(),
	)
	f.staff = f.hire(t, "E001", employee.RoleEmployee, 10)
	f.admin = f.hire(t, "A001", employee.RoleAdmin, 10)
	return f
}

func (f *fixture) hire(t *testing.T, code string, role employee.Role, days int) auth.Principal {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		Code:               code,
		Name:               "Employee " + code,
		Role:               role,
		Status:             employee.StatusActive,
		RemainingLeaveDays: days,
		HiredAt:            time.Date(2026, 4, 1, 0, 0, 0, 0, jst),
	})
	require.NoError(t, err)
	return e.Principal()
}

func (f *fixture) remaining(t *testing.T, id string) int {
	t.Helper()
	e, err := f.employees.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e.RemainingLeaveDays
}

func strPtr(s string) *string { return &s }

func TestRequestService_ApproveLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "family event"})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusPending), created.Status)
	assert.Equal(t, "2026-10-13", *created.LeaveDate)
	assert.Equal(t, 10, f.remaining(t, f.staff.EmployeeID), "balance is only consumed on approval")

	approved, err := f.svc.Approve(ctx, f.admin, created.ID, request.ApproveRequest{Comment: strPtr("  enjoy  ")})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusApproved), approved.Status)
	assert.Equal(t, f.admin.EmployeeID, *approved.ApproverID)
	assert.Equal(t, "enjoy", *approved.ApproverComment)
	assert.NotNil(t, approved.DecidedAt)

	assert.Equal(t, 9, f.remaining(t, f.staff.EmployeeID))
	rec, err := f.records.GetByEmployeeAndDate(ctx, f.staff.EmployeeID, time.Date(2026, 10, 13, 0, 0, 0, 0, jst))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.DayStatusPaidLeave, rec.Status)

	_, err = f.svc.Approve(ctx, f.admin, created.ID, request.ApproveRequest{})
	assert.ErrorIs(t, err, request.ErrAlreadyProcessed)
	assert.Equal(t, 9, f.remaining(t, f.staff.EmployeeID))
}

func TestRequestService_RequestLeaveGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	broke := f.hire(t, "E002", employee.RoleEmployee, 0)

	_, err := f.svc.RequestLeave(ctx, broke, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	assert.ErrorIs(t, err, employee.ErrInsufficientLeaveDays)

	_, err = f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-09", Reason: "today"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "leave_date")

	_, err = f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	require.NoError(t, err)
	_, err = f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "again"})
	assert.ErrorIs(t, err, request.ErrDuplicateRequest)
}

func TestRequestService_ApproveRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.staff, created.ID, request.ApproveRequest{})
	assert.ErrorIs(t, err, auth.ErrAccessDenied)

	_, err = f.svc.Approve(ctx, f.admin, "missing", request.ApproveRequest{})
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestRequestService_FailedApprovalLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	last := f.hire(t, "E002", employee.RoleEmployee, 1)

	first, err := f.svc.RequestLeave(ctx, last, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	require.NoError(t, err)
	second, err := f.svc.RequestLeave(ctx, last, request.CreateLeaveRequest{LeaveDate: "2026-10-14", Reason: "rest"})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.admin, first.ID, request.ApproveRequest{})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.admin, second.ID, request.ApproveRequest{})
	assert.ErrorIs(t, err, employee.ErrInsufficientLeaveDays)

	rec, err := f.records.GetByEmployeeAndDate(ctx, last.EmployeeID, time.Date(2026, 10, 14, 0, 0, 0, 0, jst))
	require.NoError(t, err)
	assert.Nil(t, rec)

	mine, err := f.svc.ListMyRequests(ctx, last, request.ListFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, second.ID, mine[0].ID)
}

func TestRequestService_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, f.admin, created.ID, request.RejectRequest{Reason: "  "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	rejected, err := f.svc.Reject(ctx, f.admin, created.ID, request.RejectRequest{Reason: "busy season"})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusRejected), rejected.Status)
	assert.Equal(t, "busy season", *rejected.ApproverComment)
	assert.Equal(t, 10, f.remaining(t, f.staff.EmployeeID))

	_, err = f.svc.Approve(ctx, f.admin, created.ID, request.ApproveRequest{})
	assert.ErrorIs(t, err, request.ErrAlreadyProcessed)

	// A rejected leave no longer blocks the date.
	_, err = f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	assert.NoError(t, err)
}

func TestRequestService_ApproveAdjustment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:        "2026-10-08",
		CorrectedClockIn:  strPtr("09:00"),
		CorrectedClockOut: strPtr("18:00"),
		Reason:            "forgot to clock in",
	})
	require.NoError(t, err)
	assert.Equal(t, string(request.KindAdjustment), created.Kind)
	assert.Equal(t, "09:00", *created.CorrectedClockIn)

	_, err = f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:       "2026-10-08",
		CorrectedClockIn: strPtr("09:05"),
		Reason:           "again",
	})
	assert.ErrorIs(t, err, request.ErrDuplicateRequest)

	_, err = f.svc.Approve(ctx, f.admin, created.ID, request.ApproveRequest{})
	require.NoError(t, err)

	rec, err := f.records.GetByEmployeeAndDate(ctx, f.staff.EmployeeID, time.Date(2026, 10, 8, 0, 0, 0, 0, jst))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StateClosed, rec.State())
	assert.Equal(t, 480, rec.Durations.WorkingMinutes)
	assert.Equal(t, 0, rec.Durations.LateMinutes)
}

func TestRequestService_AdjustmentValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:        "2026-10-08",
		CorrectedClockIn:  strPtr("18:00"),
		CorrectedClockOut: strPtr("09:00"),
		Reason:            "swap",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "corrected_clock_out")

	_, err = f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:       "2026-10-10",
		CorrectedClockIn: strPtr("09:00"),
		Reason:           "future",
	})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "target_date")
}

func TestRequestService_AdjustmentOnPaidLeaveDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	date := time.Date(2026, 10, 7, 0, 0, 0, 0, jst)

	leave, err := attendance.MarkPaidLeave(nil, f.staff.EmployeeID, date, now)
	require.NoError(t, err)
	_, err = f.records.Create(ctx, leave)
	require.NoError(t, err)

	_, err = f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:        "2026-10-07",
		CorrectedClockIn:  strPtr("09:00"),
		CorrectedClockOut: strPtr("18:00"),
		Reason:            "worked after all",
	})
	assert.ErrorIs(t, err, attendance.ErrOnPaidLeave)

	rec, err := f.records.GetByEmployeeAndDate(ctx, f.staff.EmployeeID, date)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.DayStatusPaidLeave, rec.Status)
}

func TestRequestService_AdjustmentBlockedAfterSubmission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.submissions.Create(ctx, attendance.MonthlySubmission{
		EmployeeID:  f.staff.EmployeeID,
		YearMonth:   "2026-10",
		SubmittedAt: now,
	})
	require.NoError(t, err)

	_, err = f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:       "2026-10-05",
		CorrectedClockIn: strPtr("09:00"),
		Reason:           "late fix",
	})
	assert.ErrorIs(t, err, attendance.ErrFixedAttendance)
}

func TestRequestService_Listing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := f.hire(t, "E002", employee.RoleEmployee, 10)

	_, err := f.svc.RequestLeave(ctx, f.staff, request.CreateLeaveRequest{LeaveDate: "2026-10-13", Reason: "rest"})
	require.NoError(t, err)
	_, err = f.svc.RequestAdjustment(ctx, f.staff, request.CreateAdjustmentRequest{
		TargetDate:        "2026-10-08",
		CorrectedClockOut: strPtr("18:00"),
		Reason:            "forgot to clock out",
	})
	require.NoError(t, err)
	_, err = f.svc.RequestLeave(ctx, other, request.CreateLeaveRequest{LeaveDate: "2026-10-14", Reason: "rest"})
	require.NoError(t, err)

	mine, err := f.svc.ListMyRequests(ctx, f.staff, request.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	leaves, err := f.svc.ListMyRequests(ctx, f.staff, request.ListFilter{Kind: "leave"})
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, string(request.KindLeave), leaves[0].Kind)

	all, err := f.svc.ListRequests(ctx, f.admin, request.ListFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.svc.ListRequests(ctx, f.staff, request.ListFilter{})
	assert.ErrorIs(t, err, auth.ErrAccessDenied)

	_, err = f.svc.ListMyRequests(ctx, f.staff, request.ListFilter{Kind: "overtime"})
	require.ErrorAs(t, err, new(validator.ValidationErrors))
}
