package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code     string `json:"employee_code" validate:"required,employee_code"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=employee admin"`
	HiredAt  string `json:"hired_at" validate:"omitempty,date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	if r.Role == "" {
		r.Role = string(RoleEmployee)
	}

	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	errs.Add("name", validator.CheckName(r.Name))
	errs.Add("password", validator.CheckPassword(r.Password, r.Code))
	return errs.Err()
}

type AdjustLeaveBalanceRequest struct {
	EmployeeID string `json:"-"`
	DeltaDays  int    `json:"delta_days"`
	Reason     string `json:"reason"`
}

func (r *AdjustLeaveBalanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.DeltaDays == 0 {
		errs = append(errs, validator.ValidationError{Field: "delta_days", Message: "delta_days must not be zero"})
	}
	errs.Add("reason", validator.CheckReason(r.Reason))
	return errs.Err()
}

type EmployeeResponse struct {
	ID                 string  `json:"id"`
	Code               string  `json:"employee_code"`
	Name               string  `json:"name"`
	Role               string  `json:"role"`
	Status             string  `json:"status"`
	RemainingLeaveDays int     `json:"remaining_leave_days"`
	HiredAt            string  `json:"hired_at"`
	RetiredAt          *string `json:"retired_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 e.ID,
		Code:               e.Code,
		Name:               e.Name,
		Role:               string(e.Role),
		Status:             string(e.Status),
		RemainingLeaveDays: e.RemainingLeaveDays,
		HiredAt:            e.HiredAt.Format(time.DateOnly),
	}
	if e.RetiredAt != nil {
		s := e.RetiredAt.Format(time.DateOnly)
		resp.RetiredAt = &s
	}
	return resp
}
