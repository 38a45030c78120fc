package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface so request DTO tags are checked on c.Validate
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator builds the validator used for all request payloads.
// Required-struct mode makes `required` fire on zero-valued nested
// structs, which the batch payloads rely on.
func NewValidator() echo.Validator {
	return &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks struct tags and returns validator.ValidationErrors on
// failure; the central error handler translates those into VALIDATION_001
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
