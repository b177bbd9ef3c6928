package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"poultryfarm/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateInput runs struct-tag validation and folds failures into the
// shared InvalidInput sentinel so callers can match on errors.Is.
func ValidateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func checkInput(v any) error { return ValidateInput(v) }
