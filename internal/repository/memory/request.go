package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

func matches(h request.Header, f request.Filter) bool {
	if f.EmployeeID != nil && h.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && h.Status != *f.Status {
		return false
	}
	return true
}

// applyDecision copies the decision fields of h onto stored when it is still pending.
func applyDecision(stored *request.Header, h request.Header) error {
	if !stored.IsPending() {
		return request.ErrAlreadyProcessed
	}
	stored.Status = h.Status
	stored.ApproverID = h.ApproverID
	stored.ApproverComment = h.ApproverComment
	stored.DecidedAt = h.DecidedAt
	stored.UpdatedAt = h.UpdatedAt
	return nil
}

type leaveRequestRepository struct {
	s *Store
}

func NewLeaveRequestRepository(s *Store) request.LeaveRequestRepository {
	return &leaveRequestRepository{s: s}
}

func (r *leaveRequestRepository) Create(ctx context.Context, lr request.LeaveRequest) (request.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if lr.ID == "" {
		id, err := newID()
		if err != nil {
			return request.LeaveRequest{}, err
		}
		lr.ID = id
	}
	put(ctx, r.s.data.leaves, lr.ID, lr)
	return lr, nil
}

func (r *leaveRequestRepository) GetByID(_ context.Context, id string) (request.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lr, ok := r.s.data.leaves[id]
	if !ok {
		return request.LeaveRequest{}, request.ErrRequestNotFound
	}
	return lr, nil
}

func (r *leaveRequestRepository) UpdateDecision(ctx context.Context, h request.Header) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lr, ok := r.s.data.leaves[h.ID]
	if !ok {
		return request.ErrRequestNotFound
	}
	if err := applyDecision(&lr.Header, h); err != nil {
		return err
	}
	put(ctx, r.s.data.leaves, h.ID, lr)
	return nil
}

func (r *leaveRequestRepository) List(_ context.Context, f request.Filter) ([]request.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []request.LeaveRequest
	for _, lr := range r.s.data.leaves {
		if matches(lr.Header, f) {
			out = append(out, lr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *leaveRequestRepository) ExistsActiveForDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, lr := range r.s.data.leaves {
		if lr.EmployeeID == employeeID && timeutil.SameDate(lr.LeaveDate, date) && lr.Status != request.StatusRejected {
			return true, nil
		}
	}
	return false, nil
}

type adjustmentRequestRepository struct {
	s *Store
}

func NewAdjustmentRequestRepository(s *Store) request.AdjustmentRequestRepository {
	return &adjustmentRequestRepository{s: s}
}

func (r *adjustmentRequestRepository) Create(ctx context.Context, ar request.AdjustmentRequest) (request.AdjustmentRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ar.ID == "" {
		id, err := newID()
		if err != nil {
			return request.AdjustmentRequest{}, err
		}
		ar.ID = id
	}
	put(ctx, r.s.data.adjustments, ar.ID, ar)
	return ar, nil
}

func (r *adjustmentRequestRepository) GetByID(_ context.Context, id string) (request.AdjustmentRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ar, ok := r.s.data.adjustments[id]
	if !ok {
		return request.AdjustmentRequest{}, request.ErrRequestNotFound
	}
	return ar, nil
}

func (r *adjustmentRequestRepository) UpdateDecision(ctx context.Context, h request.Header) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ar, ok := r.s.data.adjustments[h.ID]
	if !ok {
		return request.ErrRequestNotFound
	}
	if err := applyDecision(&ar.Header, h); err != nil {
		return err
	}
	put(ctx, r.s.data.adjustments, h.ID, ar)
	return nil
}

func (r *adjustmentRequestRepository) List(_ context.Context, f request.Filter) ([]request.AdjustmentRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []request.AdjustmentRequest
	for _, ar := range r.s.data.adjustments {
		if matches(ar.Header, f) {
			out = append(out, ar)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *adjustmentRequestRepository) ExistsPendingForDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, ar := range r.s.data.adjustments {
		if ar.EmployeeID == employeeID && timeutil.SameDate(ar.TargetDate, date) && ar.Status == request.StatusPending {
			return true, nil
		}
	}
	return false, nil
}
