package employee

import (
	"context"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
)

type EmployeeService interface {
	Create(ctx context.Context, p auth.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, p auth.Principal, id string) (EmployeeResponse, error)
	Retire(ctx context.Context, p auth.Principal, id string) (EmployeeResponse, error)
	AdjustLeaveBalance(ctx context.Context, p auth.Principal, req AdjustLeaveBalanceRequest) (EmployeeResponse, error)
}
