// Package validation checks sign-in and registration form input before any
// network call is attempted. Failures are structured per field so the
// presentation layer can render inline messages.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoginForm is the credential pair submitted on sign-in.
type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterForm is the local registration input. ConfirmPassword must repeat
// Password exactly.
type RegisterForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Error is a form validation failure: one message per offending field.
type Error struct {
	Fields map[string]string
}

// Error returns the field messages joined in field order.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var validate = newValidator()

// newValidator keys reported fields by their json names, so messages line
// up with what the form actually submitted.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateLogin checks a login form. Returns *Error on failure.
func ValidateLogin(form LoginForm) error {
	return translate(validate.Struct(form))
}

// ValidateRegister checks a registration form. Returns *Error on failure.
func ValidateRegister(form RegisterForm) error {
	return translate(validate.Struct(form))
}

// translate converts validator.ValidationErrors into the per-field Error the
// UI contract expects. Non-validation errors pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// First message per field wins; validator reports tag order.
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = messageFor(fe)
	}
	return &Error{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "passwords do not match"
	default:
		return "is invalid"
	}
}
