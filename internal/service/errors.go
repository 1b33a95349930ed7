package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUnauthorized is returned for bad credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names, which are also the form field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// check validates in against its struct tags and returns the first failure
// as a *ValidationError.
func check(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "is required")
	case "max":
		return invalid(fe.Field(), fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "min":
		return invalid(fe.Field(), fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "email":
		return invalid(fe.Field(), "must be a valid email address")
	case "latitude", "longitude":
		return invalid(fe.Field(), "is out of range")
	default:
		return invalid(fe.Field(), "is invalid")
	}
}
