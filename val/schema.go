package val

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/rise-and-shine/mediator/result"
)

// Schema returns a validator that checks the `validate` struct tags of I
// using the go-playground/validator package.
func Schema[I any]() Validator[I] {
	return Func[I](func(in I) []result.Violation {
		return CheckSchema(in)
	})
}

// CheckSchema validates a value against its `validate` struct tags and
// returns every failing rule as a field violation. Non-struct values are
// considered valid: schema validation only applies to tagged structs.
func CheckSchema(schema any) []result.Violation {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return lo.Map(validationErrors, func(fieldErr validator.FieldError, _ int) result.Violation {
			return result.Violation{
				Field:   fieldErr.Field(),
				Message: describe(fieldErr),
			}
		})
	}

	return []result.Violation{{Field: "", Message: err.Error()}}
}

// describe converts a failed rule into a human-readable message. The message
// is developer-facing; boundary localization works off the violation field
// and the stable VALIDATION_FAILED code.
func describe(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	param := fieldErr.Param()

	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "len":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be exactly %s characters", param)
		}
		return fmt.Sprintf("Must have exactly %s items", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "gt":
		return fmt.Sprintf("Must be greater than %s", param)
	case "lt":
		return fmt.Sprintf("Must be less than %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", param)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "url":
		return "Must be a valid URL"
	case "alphanum":
		return "Must contain only alphanumeric characters"
	case "numeric":
		return "Must be a valid number"
	case "datetime":
		return fmt.Sprintf("Must be a valid datetime in format: %s", param)
	case "eqfield":
		return fmt.Sprintf("Must be equal to %s", param)
	}

	return fmt.Sprintf("Failed validation: %s", tag)
}
