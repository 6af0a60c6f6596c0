package auth

import (
	"strings"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,employee_code"`
	Password     string `json:"password" validate:"required,max=20"`
}

func (r *LoginRequest) Validate() error {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	return validator.Struct(r)
}

type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	EmployeeID           string `json:"employee_id"`
	Role                 string `json:"role"`
}
