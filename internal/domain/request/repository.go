package request

import (
	"context"
	"time"
)

type Filter struct {
	EmployeeID *string
	Status     *Status
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, r LeaveRequest) (LeaveRequest, error)
	// GetByID returns ErrRequestNotFound when no leave request has the id.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// UpdateDecision persists the decision of a pending request. It returns
	// ErrAlreadyProcessed when the stored request is no longer pending.
	UpdateDecision(ctx context.Context, h Header) error
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)
	// ExistsActiveForDate reports a pending or approved request for the date.
	ExistsActiveForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

type AdjustmentRequestRepository interface {
	Create(ctx context.Context, r AdjustmentRequest) (AdjustmentRequest, error)
	GetByID(ctx context.Context, id string) (AdjustmentRequest, error)
	UpdateDecision(ctx context.Context, h Header) error
	List(ctx context.Context, filter Filter) ([]AdjustmentRequest, error)
	ExistsPendingForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
