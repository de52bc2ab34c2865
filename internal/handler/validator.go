package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator
// so handlers can call c.Validate on bound request bodies. Struct
// tags cover shape checks (required fields, minimums); calendar
// rules that depend on "today" stay in the handlers.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns a validator ready to be assigned to
// echo.Echo.Validator.
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// Report fields by their json name so error messages match the
	// payload the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// validationMessage flattens a validator error into one short
// human-readable sentence naming the first offending field. The
// json tag name is preferred when present so the message matches
// what the client actually sent.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "invalid request body"
	}
	fe := errs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
