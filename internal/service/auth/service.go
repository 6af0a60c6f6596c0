package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	clock timeutil.Clock
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service, clock timeutil.Clock) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		clock:              clock,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if emp.IsRetired() {
		slog.Warn("Retired employee attempted to log in", "employee_id", emp.ID)
		return auth.TokenResponse{}, auth.ErrRetiredEmployee
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(emp.Principal(), a.clock.Now())
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("Employee logged in", "employee_id", emp.ID, "role", emp.Role)
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		EmployeeID:           emp.ID,
		Role:                 string(emp.Role),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt int64) error {
	if token == "" {
		return auth.ErrUnauthenticated
	}
	a.Service.RevokeToken(token, expiresAt)
	return nil
}

// Resolve implements auth.AuthService.
func (a *AuthServiceImpl) Resolve(ctx context.Context, employeeID string) (auth.Principal, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.Principal{}, auth.ErrUnauthenticated
		}
		return auth.Principal{}, fmt.Errorf("failed to resolve principal: %w", err)
	}
	return emp.Principal(), nil
}
