package validation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct runs `validate` tags on v and reports failures per field.
func ValidateStruct(v interface{}) *ValidationResult {
	err := Validator().Struct(v)
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "", Message: err.Error(), Code: "INVALID"}},
		}
	}

	out := &ValidationResult{Valid: false}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fe.Namespace(),
			Message: fieldMessage(fe),
			Code:    "FIELD_" + fe.Tag(),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field missing"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
