package request

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

// LeavePayload is everything needed to validate a new leave request.
type LeavePayload struct {
	Employee  employee.Employee
	LeaveDate time.Time
	Reason    string
	Today     time.Time
}

func ValidateLeave(p LeavePayload) error {
	var errs validator.ValidationErrors
	errs.Add("leave_date", validator.CheckLeaveDate(p.LeaveDate, p.Today))
	errs.Add("reason", validator.CheckReason(p.Reason))
	if err := errs.Err(); err != nil {
		return err
	}
	if p.Employee.RemainingLeaveDays <= 0 {
		return employee.ErrInsufficientLeaveDays
	}
	return nil
}

func buildLeave(h Header, p LeavePayload) *LeaveRequest {
	h.Reason = strings.TrimSpace(p.Reason)
	return &LeaveRequest{Header: h, LeaveDate: p.LeaveDate}
}

func NewLeaveWorkflow(apply func(ctx context.Context, req *LeaveRequest) error) Workflow[LeavePayload, *LeaveRequest] {
	return Workflow[LeavePayload, *LeaveRequest]{
		Kind:     KindLeave,
		Validate: ValidateLeave,
		Build:    buildLeave,
		Apply:    apply,
	}
}

// AdjustmentPayload is everything needed to validate a new adjustment request.
// Corrected times are already placed on TargetDate.
type AdjustmentPayload struct {
	TargetDate   time.Time
	CorrectedIn  *time.Time
	CorrectedOut *time.Time
	Reason       string
	Today        time.Time
}

func ValidateAdjustment(p AdjustmentPayload) error {
	var errs validator.ValidationErrors
	errs.Add("target_date", validator.CheckAdjustmentDate(p.TargetDate, p.Today))
	errs.Add("reason", validator.CheckReason(p.Reason))

	switch {
	case p.CorrectedIn == nil && p.CorrectedOut == nil:
		errs = append(errs, validator.ValidationError{
			Field:   "corrected_clock_in",
			Message: "at least one of corrected_clock_in or corrected_clock_out is required",
		})
	case p.CorrectedIn != nil && p.CorrectedOut != nil && !p.CorrectedOut.After(*p.CorrectedIn):
		errs = append(errs, validator.ValidationError{
			Field:   "corrected_clock_out",
			Message: "corrected_clock_out must be after corrected_clock_in",
		})
	}
	return errs.Err()
}

func buildAdjustment(h Header, p AdjustmentPayload) *AdjustmentRequest {
	h.Reason = strings.TrimSpace(p.Reason)
	return &AdjustmentRequest{
		Header:       h,
		TargetDate:   p.TargetDate,
		CorrectedIn:  p.CorrectedIn,
		CorrectedOut: p.CorrectedOut,
	}
}

func NewAdjustmentWorkflow(apply func(ctx context.Context, req *AdjustmentRequest) error) Workflow[AdjustmentPayload, *AdjustmentRequest] {
	return Workflow[AdjustmentPayload, *AdjustmentRequest]{
		Kind:     KindAdjustment,
		Validate: ValidateAdjustment,
		Build:    buildAdjustment,
		Apply:    apply,
	}
}
