package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"golang.org/x/crypto/bcrypt"
)

// LeavePolicy holds the paid-leave allowance rules.
type LeavePolicy struct {
	InitialDays int
	CapDays     int
}

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	clock        timeutil.Clock
	leave        LeavePolicy
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository, clock timeutil.Clock, leave LeavePolicy) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		clock:        clock,
		leave:        leave,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, p auth.Principal, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleAdmin); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hiredAt := timeutil.Today(s.clock)
	if req.HiredAt != "" {
		d, err := timeutil.ParseDate(req.HiredAt, s.clock.Location())
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hired_at: %w", err)
		}
		hiredAt = d
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Code:               req.Code,
		Name:               req.Name,
		PasswordHash:       hash,
		Role:               employee.Role(req.Role),
		Status:             employee.StatusActive,
		RemainingLeaveDays: s.leave.InitialDays,
		HiredAt:            hiredAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "code", created.Code, "role", created.Role, "created_by", p.EmployeeID)
	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, p auth.Principal, id string) (employee.EmployeeResponse, error) {
	if err := auth.CanAccessOwn(&p, id); err != nil {
		return employee.EmployeeResponse{}, err
	}
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// Retire implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Retire(ctx context.Context, p auth.Principal, id string) (employee.EmployeeResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleAdmin); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if id == p.EmployeeID {
		return employee.EmployeeResponse{}, employee.ErrCannotRetireSelf
	}

	var retired employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := e.Retire(s.clock.Now()); err != nil {
			return err
		}
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		retired = e
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee retired", "employee_id", id, "retired_by", p.EmployeeID)
	return employee.ToResponse(retired), nil
}

// AdjustLeaveBalance implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AdjustLeaveBalance(ctx context.Context, p auth.Principal, req employee.AdjustLeaveBalanceRequest) (employee.EmployeeResponse, error) {
	if err := auth.CanAccess(&p, auth.RoleAdmin); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var adjusted employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := e.AdjustLeaveBalance(req.DeltaDays, s.leave.CapDays); err != nil {
			return err
		}
		e.UpdatedAt = s.clock.Now()
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update leave balance: %w", err)
		}
		adjusted = e
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Leave balance adjusted",
		"employee_id", adjusted.ID,
		"delta_days", req.DeltaDays,
		"remaining_leave_days", adjusted.RemainingLeaveDays,
		"reason", strings.TrimSpace(req.Reason),
		"adjusted_by", p.EmployeeID,
	)
	return employee.ToResponse(adjusted), nil
}

// EnsureAdmin creates the first administrator account when no employee holds code yet.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, repo employee.EmployeeRepository, clock timeutil.Clock, leave LeavePolicy, code, name, password string) (bool, error) {
	_, err := repo.GetByCode(ctx, code)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return false, fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	now := clock.Now()
	created, err := repo.Create(ctx, employee.Employee{
		Code:               code,
		Name:               name,
		PasswordHash:       hash,
		Role:               employee.RoleAdmin,
		Status:             employee.StatusActive,
		RemainingLeaveDays: leave.InitialDays,
		HiredAt:            timeutil.Today(clock),
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return false, err
	}
	slog.Info("Bootstrap admin created", "employee_id", created.ID, "code", created.Code)
	return true, nil
}
