package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

const (
	EmployeeCodeMinLength = 3
	EmployeeCodeMaxLength = 10
	PasswordMinLength     = 8
	PasswordMaxLength     = 20
	ReasonMaxLength       = 200
	NameMaxLength         = 50
)

// Result is the outcome of a single rule.
type Result struct {
	Valid   bool
	Message string
}

var ok = Result{Valid: true}

func invalid(message string) Result {
	return Result{Valid: false, Message: message}
}

var employeeCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,10}$`)

// CheckEmployeeCode: 3-10 ASCII alphanumeric characters.
func CheckEmployeeCode(code string) Result {
	if IsEmpty(code) {
		return invalid("employee code is required")
	}
	if !employeeCodeRegex.MatchString(code) {
		return invalid("employee code must be 3-10 alphanumeric characters")
	}
	return ok
}

var commonPasswords = []string{"password", "123456", "password123", "admin", "qwerty", "abc123"}

// CheckPassword rejects a password equal to the employee code.
func CheckPassword(password, employeeCode string) Result {
	return checkPassword(password, employeeCode, false)
}

// CheckPasswordStrict also rejects a password that contains the employee code.
func CheckPasswordStrict(password, employeeCode string) Result {
	return checkPassword(password, employeeCode, true)
}

func checkPassword(password, employeeCode string, strict bool) Result {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return invalid("password must be 8-20 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return invalid("password must contain an uppercase letter, a lowercase letter, a digit and a symbol")
	}

	if hasRepeatedRun(password, 3) {
		return invalid("password must not contain 3 or more repeated characters")
	}

	if employeeCode != "" {
		if password == employeeCode {
			return invalid("password must not be the same as employee code")
		}
		if strict && strings.Contains(strings.ToLower(password), strings.ToLower(employeeCode)) {
			return invalid("password must not contain employee code")
		}
	}

	if IsInSlice(strings.ToLower(password), commonPasswords) {
		return invalid("password is too common")
	}
	return ok
}

func hasRepeatedRun(s string, limit int) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= limit {
			return true
		}
		prev = r
	}
	return false
}

// CheckReason: required, at most 200 characters.
func CheckReason(reason string) Result {
	if IsEmpty(reason) {
		return invalid("reason is required")
	}
	if utf8.RuneCountInString(reason) > ReasonMaxLength {
		return invalid("reason must be at most 200 characters")
	}
	return ok
}

func CheckName(name string) Result {
	if IsEmpty(name) {
		return invalid("name is required")
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return invalid("name must be at most 50 characters")
	}
	return ok
}

// CheckLeaveDate: the leave date must be strictly after today.
func CheckLeaveDate(date, today time.Time) Result {
	if !date.After(today) {
		return invalid("leave date must be after today")
	}
	return ok
}

// CheckAdjustmentDate: the target date must be today or earlier.
func CheckAdjustmentDate(date, today time.Time) Result {
	if date.After(today) {
		return invalid("target date must be today or earlier")
	}
	return ok
}

func CheckTimeOfDay(s string) Result {
	if _, err := timeutil.ParseTimeOfDay(s); err != nil {
		return invalid("time must be a valid HH:MM")
	}
	return ok
}
