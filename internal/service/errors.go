package service

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("order not found")

// ValidationError marks input the stores refuse: missing required fields,
// malformed values, duplicate master entries. Store state is unchanged when
// one is returned.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
