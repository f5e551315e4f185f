package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required fields, enum membership, and format constraints on a
// record. Pointer sub-records (e.g. Interview.Feedback) are validated only
// when present.
func Validate(v any) error {
	return validate.Struct(v)
}
