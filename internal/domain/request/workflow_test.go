package request

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	today     = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	now       = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	staff     = &auth.Principal{EmployeeID: "e1", Role: employee.RoleEmployee, Status: employee.StatusActive}
	admin     = &auth.Principal{EmployeeID: "a1", Role: employee.RoleAdmin, Status: employee.StatusActive}
	retiree   = &auth.Principal{EmployeeID: "e9", Role: employee.RoleEmployee, Status: employee.StatusRetired}
	employee1 = employee.Employee{ID: "e1", RemainingLeaveDays: 10, Role: employee.RoleEmployee, Status: employee.StatusActive}
)

func leavePayload(remaining int) LeavePayload {
	e := employee1
	e.RemainingLeaveDays = remaining
	return LeavePayload{Employee: e, LeaveDate: today.AddDate(0, 0, 3), Reason: "family event", Today: today}
}

func TestLeaveWorkflow_Create(t *testing.T) {
	w := NewLeaveWorkflow(nil)

	req, err := w.Create(staff, leavePayload(10), now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, KindLeave, req.Kind)
	assert.Equal(t, "e1", req.EmployeeID)
	assert.Equal(t, today.AddDate(0, 0, 3), req.LeaveDate)

	_, err = w.Create(staff, leavePayload(0), now)
	assert.ErrorIs(t, err, employee.ErrInsufficientLeaveDays)

	p := leavePayload(10)
	p.LeaveDate = today
	_, err = w.Create(staff, p, now)
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs.ToMap(), "leave_date")

	p = leavePayload(10)
	p.Reason = strings.Repeat("a", 201)
	_, err = w.Create(staff, p, now)
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs.ToMap(), "reason")

	_, err = w.Create(retiree, leavePayload(10), now)
	assert.ErrorIs(t, err, auth.ErrRetiredEmployee)

	_, err = w.Create(nil, leavePayload(10), now)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestLeaveWorkflow_Approve(t *testing.T) {
	applied := 0
	w := NewLeaveWorkflow(func(ctx context.Context, req *LeaveRequest) error {
		applied++
		return nil
	})

	req, err := w.Create(staff, leavePayload(10), now)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Approve(context.Background(), staff, req, nil, now), auth.ErrAccessDenied)
	assert.Equal(t, 0, applied)

	comment := "  enjoy  "
	require.NoError(t, w.Approve(context.Background(), admin, req, &comment, now))
	assert.Equal(t, StatusApproved, req.Status)
	assert.Equal(t, "a1", *req.ApproverID)
	assert.Equal(t, "enjoy", *req.ApproverComment)
	assert.Equal(t, now, *req.DecidedAt)
	assert.Equal(t, 1, applied)

	assert.ErrorIs(t, w.Approve(context.Background(), admin, req, nil, now), ErrAlreadyProcessed)
	assert.ErrorIs(t, w.Reject(admin, req, "too late", now), ErrAlreadyProcessed)
	assert.Equal(t, 1, applied, "side effect must run exactly once")
}

func TestWorkflow_ApproveSideEffectFailureLeavesRequestPending(t *testing.T) {
	boom := errors.New("boom")
	w := NewLeaveWorkflow(func(ctx context.Context, req *LeaveRequest) error {
		return boom
	})

	req, err := w.Create(staff, leavePayload(10), now)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Approve(context.Background(), admin, req, nil, now), boom)
	assert.Equal(t, StatusPending, req.Status)
	assert.Nil(t, req.ApproverID)
}

func TestWorkflow_Reject(t *testing.T) {
	w := NewLeaveWorkflow(func(ctx context.Context, req *LeaveRequest) error {
		t.Fatal("reject must not run the approval side effect")
		return nil
	})

	req, err := w.Create(staff, leavePayload(10), now)
	require.NoError(t, err)

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, w.Reject(admin, req, "  ", now), &vErrs)
	assert.Equal(t, StatusPending, req.Status)

	require.NoError(t, w.Reject(admin, req, "short staffed", now))
	assert.Equal(t, StatusRejected, req.Status)
	assert.Equal(t, "short staffed", *req.ApproverComment)

	assert.ErrorIs(t, w.Reject(admin, req, "again", now), ErrAlreadyProcessed)
}

func TestAdjustmentWorkflow_Create(t *testing.T) {
	w := NewAdjustmentWorkflow(nil)
	target := today.AddDate(0, 0, -1)
	in := target.Add(9 * time.Hour)
	out := target.Add(18 * time.Hour)

	req, err := w.Create(staff, AdjustmentPayload{TargetDate: target, CorrectedIn: &in, Reason: "forgot to punch", Today: today}, now)
	require.NoError(t, err)
	assert.Equal(t, KindAdjustment, req.Kind)
	assert.Nil(t, req.CorrectedOut)

	tests := []struct {
		name    string
		payload AdjustmentPayload
		field   string
	}{
		{"no corrected times", AdjustmentPayload{TargetDate: target, Reason: "x", Today: today}, "corrected_clock_in"},
		{"out equal to in", AdjustmentPayload{TargetDate: target, CorrectedIn: &in, CorrectedOut: &in, Reason: "x", Today: today}, "corrected_clock_out"},
		{"out before in", AdjustmentPayload{TargetDate: target, CorrectedIn: &out, CorrectedOut: &in, Reason: "x", Today: today}, "corrected_clock_out"},
		{"future target", AdjustmentPayload{TargetDate: today.AddDate(0, 0, 1), CorrectedIn: &in, Reason: "x", Today: today}, "target_date"},
		{"missing reason", AdjustmentPayload{TargetDate: target, CorrectedIn: &in, Today: today}, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Create(staff, tt.payload, now)
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Contains(t, vErrs.ToMap(), tt.field)
		})
	}
}
