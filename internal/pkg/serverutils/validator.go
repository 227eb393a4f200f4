package serverutils

import (
	"github.com/go-playground/validator/v10"

	"ai-companion-be/internal/pkg/apperrors"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and collapses any failure
// into a single client-facing message. The API contract fixes the
// wording per endpoint, so the caller supplies it.
func ValidateRequest(req interface{}, message string) error {
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidation(message)
	}
	return nil
}
