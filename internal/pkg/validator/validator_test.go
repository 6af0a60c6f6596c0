package validator

import (
	"errors"
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestCheckEmployeeCode(t *testing.T) {
	valid := []string{"E01", "abc123", "ABCDEFGHIJ"}
	invalid := []string{"", "E1", "ABCDEFGHIJK", "E-001", "社員01", "E 01"}
	for _, code := range valid {
		if r := CheckEmployeeCode(code); !r.Valid {
			t.Errorf("CheckEmployeeCode(%q) = %q, want valid", code, r.Message)
		}
	}
	for _, code := range invalid {
		if r := CheckEmployeeCode(code); r.Valid {
			t.Errorf("CheckEmployeeCode(%q) = valid, want invalid", code)
		}
	}
}

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		code     string
		valid    bool
		message  string
	}{
		{"one of each class", "Abcd1234!", "E001", true, ""},
		{"repeated characters", "Aaaa1234!", "E001", false, "password must not contain 3 or more repeated characters"},
		{"same as employee code", "Abcd123!", "Abcd123!", false, "password must not be the same as employee code"},
		{"too short", "Ab1!", "E001", false, "password must be 8-20 characters"},
		{"too long", "Abcd1234!Abcd1234!xyz", "E001", false, "password must be 8-20 characters"},
		{"missing symbol", "Abcd12345", "E001", false, "password must contain an uppercase letter, a lowercase letter, a digit and a symbol"},
		{"missing upper", "abcd1234!", "E001", false, "password must contain an uppercase letter, a lowercase letter, a digit and a symbol"},
		{"contains code is fine in lenient mode", "xE001Ab!", "E001", true, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := CheckPassword(c.password, c.code)
			if r.Valid != c.valid {
				t.Fatalf("CheckPassword(%q, %q).Valid = %v, want %v (%s)", c.password, c.code, r.Valid, c.valid, r.Message)
			}
			if r.Message != c.message {
				t.Errorf("message = %q, want %q", r.Message, c.message)
			}
		})
	}
}

func TestCheckPasswordStrict(t *testing.T) {
	if r := CheckPasswordStrict("xE001Ab!", "e001"); r.Valid {
		t.Errorf("CheckPasswordStrict should reject a password containing the employee code")
	}
	if r := CheckPasswordStrict("Abcd1234!", "E001"); !r.Valid {
		t.Errorf("CheckPasswordStrict(%q) = %q, want valid", "Abcd1234!", r.Message)
	}
}

func TestCheckReason(t *testing.T) {
	long := make([]rune, 201)
	for i := range long {
		long[i] = '休'
	}
	if r := CheckReason(""); r.Valid {
		t.Error("empty reason should be invalid")
	}
	if r := CheckReason("   "); r.Valid {
		t.Error("blank reason should be invalid")
	}
	if r := CheckReason(string(long[:200])); !r.Valid {
		t.Errorf("200 characters should be valid: %s", r.Message)
	}
	if r := CheckReason(string(long)); r.Valid {
		t.Error("201 characters should be invalid")
	}
}

func TestCheckDates(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	if CheckLeaveDate(today, today).Valid {
		t.Error("leave date today should be invalid")
	}
	if !CheckLeaveDate(tomorrow, today).Valid {
		t.Error("leave date tomorrow should be valid")
	}
	if !CheckAdjustmentDate(today, today).Valid || !CheckAdjustmentDate(yesterday, today).Valid {
		t.Error("adjustment date today or earlier should be valid")
	}
	if CheckAdjustmentDate(tomorrow, today).Valid {
		t.Error("adjustment date tomorrow should be invalid")
	}
}

func TestStruct(t *testing.T) {
	type payload struct {
		Code  string  `json:"employee_code" validate:"required,employee_code"`
		Month string  `json:"month" validate:"required,yearmonth"`
		In    *string `json:"clock_in" validate:"omitempty,hhmm"`
	}

	good := "09:00"
	if err := Struct(payload{Code: "E001", Month: "2026-10", In: &good}); err != nil {
		t.Fatalf("Struct() unexpected error: %v", err)
	}

	bad := "25:00"
	err := Struct(payload{Code: "E", Month: "2026/10", In: &bad})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() error = %v, want ValidationErrors", err)
	}
	m := errs.ToMap()
	for _, field := range []string{"employee_code", "month", "clock_in"} {
		if _, ok := m[field]; !ok {
			t.Errorf("expected error for field %q, got %v", field, m)
		}
	}
}
