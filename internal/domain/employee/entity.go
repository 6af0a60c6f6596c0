package employee

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
)

type Employee struct {
	ID                 string
	Code               string
	Name               string
	PasswordHash       string
	Role               Role
	Status             Status
	RemainingLeaveDays int
	HiredAt            time.Time
	RetiredAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Role = auth.Role

const (
	RoleEmployee = auth.RoleEmployee
	RoleAdmin    = auth.RoleAdmin
)

type Status = auth.Status

const (
	StatusActive  = auth.StatusActive
	StatusRetired = auth.StatusRetired
)

func (e Employee) IsRetired() bool {
	return e.Status == StatusRetired
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

func (e Employee) Principal() auth.Principal {
	return auth.Principal{EmployeeID: e.ID, Role: e.Role, Status: e.Status}
}

// Retire marks the employee retired as of at. Employees are never deleted.
func (e *Employee) Retire(at time.Time) error {
	if e.IsRetired() {
		return ErrAlreadyRetired
	}
	e.Status = StatusRetired
	e.RetiredAt = &at
	e.UpdatedAt = at
	return nil
}

// AdjustLeaveBalance applies delta days, keeping the balance within [0, limit].
func (e *Employee) AdjustLeaveBalance(delta, limit int) error {
	next := e.RemainingLeaveDays + delta
	if next < 0 || next > limit {
		return ErrLeaveBalanceOutOfRange
	}
	e.RemainingLeaveDays = next
	return nil
}

// ConsumeLeaveDay takes one paid-leave day from the balance.
func (e *Employee) ConsumeLeaveDay() error {
	if e.RemainingLeaveDays <= 0 {
		return ErrInsufficientLeaveDays
	}
	e.RemainingLeaveDays--
	return nil
}
