package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks user-input validation failures. Returned
// wrapped with the field detail; callers match with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// validate is the shared validator instance for struct tags.
var validate = validator.New()

// Validate checks v against its struct validation tags. Returns nil on
// success, or an error wrapping ErrInvalidInput naming the first
// offending field. Validation failures surface to the caller before
// any storage or network access.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: field %s fails %q", ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
