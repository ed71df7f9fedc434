package validator

import "errors"

// ErrInvalidOutput is returned by ValidationResult.Err when a check failed.
var ErrInvalidOutput = errors.New("invalid output")
