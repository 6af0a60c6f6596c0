package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
	testPassword  = "Abcd1234!"
)

type authFixture struct {
	svc       auth.AuthService
	jwt       jwt.Service
	employees employee.EmployeeRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := memory.NewStore()
	f := &authFixture{
		jwt:       jwt.NewJWTService(testSecret, testAccessExp),
		employees: memory.NewEmployeeRepository(store),
	}
	f.svc = NewAuthService(f.employees, f.jwt, timeutil.FixedClock{At: time.Now()})
	return f
}

func (f *authFixture) createEmployee(t *testing.T, code string, status employee.Status) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	e, err := f.employees.Create(context.Background(), employee.Employee{
		Code:         code,
		Name:         "Employee " + code,
		PasswordHash: string(hash),
		Role:         employee.RoleEmployee,
		Status:       status,
	})
	require.NoError(t, err)
	return e
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	e := f.createEmployee(t, "E001", employee.StatusActive)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{EmployeeCode: " E001 ", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, e.ID, resp.EmployeeID)
	assert.Equal(t, string(employee.RoleEmployee), resp.Role)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())

	employeeID, err := f.jwt.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, e.ID, employeeID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.createEmployee(t, "E001", employee.StatusActive)

	_, err := f.svc.Login(ctx, auth.LoginRequest{EmployeeCode: "E001", Password: "Wrong123!"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{EmployeeCode: "E999", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_RetiredEmployee(t *testing.T) {
	f := newAuthFixture(t)
	f.createEmployee(t, "E001", employee.StatusRetired)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{EmployeeCode: "E001", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrRetiredEmployee)
}

func TestLogin_Validation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{EmployeeCode: "", Password: ""})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.createEmployee(t, "E001", employee.StatusActive)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{EmployeeCode: "E001", Password: testPassword})
	require.NoError(t, err)
	assert.False(t, f.jwt.IsTokenRevoked(resp.AccessToken))

	require.NoError(t, f.svc.Logout(ctx, resp.AccessToken, resp.AccessTokenExpiresIn))
	assert.True(t, f.jwt.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, f.svc.Logout(ctx, "", 0), auth.ErrUnauthenticated)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	e := f.createEmployee(t, "E001", employee.StatusActive)

	p, err := f.svc.Resolve(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, p.EmployeeID)
	assert.Equal(t, auth.RoleEmployee, p.Role)
	assert.Equal(t, auth.StatusActive, p.Status)

	_, err = f.svc.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
