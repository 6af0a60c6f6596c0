package employee

import "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound       = apperror.New(apperror.KindNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
	ErrEmployeeCodeExists     = apperror.New(apperror.KindStateConflict, "EMPLOYEE_CODE_EXISTS", "employee code already exists")
	ErrAlreadyRetired         = apperror.New(apperror.KindStateConflict, "ALREADY_RETIRED", "employee is already retired")
	ErrInsufficientLeaveDays  = apperror.New(apperror.KindPolicyDenied, "INSUFFICIENT_LEAVE_DAYS", "no remaining paid leave days")
	ErrLeaveBalanceOutOfRange = apperror.New(apperror.KindPolicyDenied, "LEAVE_BALANCE_OUT_OF_RANGE", "leave balance must stay within the allowed range")
	ErrCannotRetireSelf       = apperror.New(apperror.KindPolicyDenied, "CANNOT_RETIRE_SELF", "cannot retire your own account")
)
