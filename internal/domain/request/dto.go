package request

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	LeaveDate string `json:"leave_date" validate:"required,date"`
	Reason    string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	return validator.Struct(r)
}

type CreateAdjustmentRequest struct {
	TargetDate        string  `json:"target_date" validate:"required,date"`
	CorrectedClockIn  *string `json:"corrected_clock_in" validate:"omitempty,hhmm"`
	CorrectedClockOut *string `json:"corrected_clock_out" validate:"omitempty,hhmm"`
	Reason            string  `json:"reason"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	if r.CorrectedClockIn != nil && *r.CorrectedClockIn == "" {
		r.CorrectedClockIn = nil
	}
	if r.CorrectedClockOut != nil && *r.CorrectedClockOut == "" {
		r.CorrectedClockOut = nil
	}
	return validator.Struct(r)
}

type ApproveRequest struct {
	Comment *string `json:"comment" validate:"omitempty,max=200"`
}

func (r *ApproveRequest) Validate() error {
	return validator.Struct(r)
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ListFilter struct {
	Kind   string `json:"kind" validate:"omitempty,oneof=leave adjustment"`
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

func (f *ListFilter) Validate() error {
	return validator.Struct(f)
}

func (f ListFilter) includes(k Kind) bool {
	return f.Kind == "" || Kind(f.Kind) == k
}

// IncludesLeave reports whether leave requests are part of the listing.
func (f ListFilter) IncludesLeave() bool {
	return f.includes(KindLeave)
}

func (f ListFilter) IncludesAdjustment() bool {
	return f.includes(KindAdjustment)
}

// ToFilter narrows the listing to employeeID when it is non-empty.
func (f ListFilter) ToFilter(employeeID string) Filter {
	var filter Filter
	if employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if f.Status != "" {
		s := Status(f.Status)
		filter.Status = &s
	}
	return filter
}

type RequestResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Kind              string  `json:"kind"`
	Status            string  `json:"status"`
	Reason            string  `json:"reason"`
	LeaveDate         *string `json:"leave_date,omitempty"`
	TargetDate        *string `json:"target_date,omitempty"`
	CorrectedClockIn  *string `json:"corrected_clock_in,omitempty"`
	CorrectedClockOut *string `json:"corrected_clock_out,omitempty"`
	ApproverID        *string `json:"approver_id"`
	ApproverComment   *string `json:"approver_comment"`
	DecidedAt         *string `json:"decided_at"`
	CreatedAt         string  `json:"created_at"`
}

func headerResponse(h Header) RequestResponse {
	resp := RequestResponse{
		ID:              h.ID,
		EmployeeID:      h.EmployeeID,
		Kind:            string(h.Kind),
		Status:          string(h.Status),
		Reason:          h.Reason,
		ApproverID:      h.ApproverID,
		ApproverComment: h.ApproverComment,
		CreatedAt:       h.CreatedAt.Format(time.RFC3339),
	}
	if h.DecidedAt != nil {
		s := h.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}

func LeaveToResponse(r LeaveRequest) RequestResponse {
	resp := headerResponse(r.Header)
	d := r.LeaveDate.Format(timeutil.DateLayout)
	resp.LeaveDate = &d
	return resp
}

func AdjustmentToResponse(r AdjustmentRequest, loc *time.Location) RequestResponse {
	resp := headerResponse(r.Header)
	d := r.TargetDate.Format(timeutil.DateLayout)
	resp.TargetDate = &d
	resp.CorrectedClockIn = timeutil.FormatClock(r.CorrectedIn, loc)
	resp.CorrectedClockOut = timeutil.FormatClock(r.CorrectedOut, loc)
	return resp
}
