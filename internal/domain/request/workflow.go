package request

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

// Decidable is implemented by every request kind through its embedded Header.
type Decidable interface {
	Base() *Header
}

// Workflow is the pending -> approved | rejected state machine, parameterized
// by a kind-specific payload validator, builder and approval side effect.
type Workflow[P any, R Decidable] struct {
	Kind     Kind
	Validate func(payload P) error
	Build    func(h Header, payload P) R
	// Apply runs before the request is marked approved. An error aborts the approval.
	Apply func(ctx context.Context, req R) error
}

// Create validates payload and returns a pending request owned by requester.
func (w Workflow[P, R]) Create(requester *auth.Principal, payload P, now time.Time) (R, error) {
	var zero R
	if err := auth.CanAccess(requester, employee.RoleEmployee); err != nil {
		return zero, err
	}
	if err := w.Validate(payload); err != nil {
		return zero, err
	}

	h := Header{
		EmployeeID: requester.EmployeeID,
		Kind:       w.Kind,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return w.Build(h, payload), nil
}

// Approve runs the side effect and moves req to approved. req is left
// untouched when any check or the side effect fails.
func (w Workflow[P, R]) Approve(ctx context.Context, approver *auth.Principal, req R, comment *string, now time.Time) error {
	if err := auth.CanAccess(approver, employee.RoleAdmin); err != nil {
		return err
	}
	h := req.Base()
	if !h.IsPending() {
		return ErrAlreadyProcessed
	}
	if w.Apply != nil {
		if err := w.Apply(ctx, req); err != nil {
			return err
		}
	}

	h.decide(StatusApproved, approver.EmployeeID, trimmed(comment), now)
	return nil
}

// Reject moves req to rejected. A reason is required; there are no side effects.
func (w Workflow[P, R]) Reject(approver *auth.Principal, req R, reason string, now time.Time) error {
	if err := auth.CanAccess(approver, employee.RoleAdmin); err != nil {
		return err
	}
	h := req.Base()
	if !h.IsPending() {
		return ErrAlreadyProcessed
	}

	var errs validator.ValidationErrors
	errs.Add("reason", validator.CheckReason(reason))
	if err := errs.Err(); err != nil {
		return err
	}

	h.decide(StatusRejected, approver.EmployeeID, trimmed(&reason), now)
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
