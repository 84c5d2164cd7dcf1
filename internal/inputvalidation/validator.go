package inputvalidation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with pre-registered rules.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a validator with common tags.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Validator{v: v}
}

// ValidateStruct validates a struct using `validate` tags.
func (v *Validator) ValidateStruct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", describe(err))
	}
	return nil
}

// describe flattens field errors into "Field: tag" pairs so callers can log
// them without depending on the validator types.
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}
