package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	playground "github.com/go-playground/validator/v10"
)

var (
	structValidator *playground.Validate
	initOnce        sync.Once
)

func engine() *playground.Validate {
	initOnce.Do(func() {
		v := playground.New(playground.WithRequiredStructEnabled())

		// Report json field names instead of Go struct field names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("employee_code", func(fl playground.FieldLevel) bool {
			return CheckEmployeeCode(fl.Field().String()).Valid
		})
		_ = v.RegisterValidation("hhmm", func(fl playground.FieldLevel) bool {
			return CheckTimeOfDay(fl.Field().String()).Valid
		})
		_ = v.RegisterValidation("yearmonth", func(fl playground.FieldLevel) bool {
			_, err := timeutil.ParseYearMonth(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("date", func(fl playground.FieldLevel) bool {
			_, ok := IsValidDate(fl.Field().String())
			return ok
		})

		structValidator = v
	})
	return structValidator
}

// Struct validates s against its `validate` tags and returns ValidationErrors on failure.
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
		})
	}
	return errs
}

func tagMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "employee_code":
		return "employee code must be 3-10 alphanumeric characters"
	case "hhmm":
		return field + " must be a valid HH:MM"
	case "yearmonth":
		return field + " must be in YYYY-MM format"
	case "date":
		return field + " must be in YYYY-MM-DD format"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "uuid":
		return field + " must be a valid UUID"
	default:
		return field + " is invalid"
	}
}
