// Package validator turns request validation failures into 422 responses.
package validator

import "github.com/garrettladley/dealdesk/internal/xerrors"

// Validator is implemented by parsed request inputs.
type Validator interface {
	// Validate returns one message per invalid field, or nil.
	Validate() map[string]string
}

// Validate runs v and wraps any failures as a validation error.
func Validate(v Validator) *xerrors.Error {
	if fields := v.Validate(); len(fields) > 0 {
		return xerrors.Validation(fields)
	}
	return nil
}
