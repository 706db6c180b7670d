package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"myblog/backend/internal/apperror"
)

// Validator adapts go-playground/validator to Echo's Validator interface.
// Validation failures surface as 422 responses naming the offending fields.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator used by every handler's
// c.Validate call.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewValidation("invalid request body")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperror.NewValidation("validation failed: " + strings.Join(fields, ", "))
}
