package request

import (
	"time"
)

type Kind string

const (
	KindLeave      Kind = "leave"
	KindAdjustment Kind = "adjustment"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

// Header holds the bookkeeping shared by every request kind.
type Header struct {
	ID              string
	EmployeeID      string
	Kind            Kind
	Reason          string
	Status          Status
	ApproverID      *string
	ApproverComment *string
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (h *Header) Base() *Header {
	return h
}

func (h Header) IsPending() bool {
	return h.Status == StatusPending
}

func (h *Header) decide(status Status, approverID string, comment *string, now time.Time) {
	h.Status = status
	h.ApproverID = &approverID
	h.ApproverComment = comment
	h.DecidedAt = &now
	h.UpdatedAt = now
}

type LeaveRequest struct {
	Header
	LeaveDate time.Time
}

type AdjustmentRequest struct {
	Header
	TargetDate   time.Time
	CorrectedIn  *time.Time
	CorrectedOut *time.Time
}
