package dto

import (
	"errors"
	"strings"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request against its `validate` tags. The first failing rule is
// reported as a stable code such as "email-required" or "password-too-short".
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apperrors.NewValidationError("invalid-request")
	}
	return apperrors.NewValidationError(codeFor(validationErrs[0]))
}

func codeFor(fe validator.FieldError) string {
	field := kebab(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + "-required"
	case "min":
		return field + "-too-short"
	case "max":
		return field + "-too-long"
	default:
		return "invalid-" + field
	}
}

// kebab turns a Go field name like "ConfirmNewPassword" into "confirm-new-password".
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
