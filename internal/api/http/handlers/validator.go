package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

var validate = validator.New()

// validateStruct runs the payload through go-playground/validator and
// renders field errors as one user-correctable message.
func validateStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	fields := make([]string, 0, len(ve))
	details := map[string]any{}
	for _, fe := range ve {
		name := strings.ToLower(fe.Field())
		fields = append(fields, name)
		details[name] = fmt.Sprintf("failed on '%s'", fe.Tag())
	}
	return apperrors.NewValidationError(
		fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
		details,
	)
}
