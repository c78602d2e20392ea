// Package validation checks request shape at the boundary before anything
// reaches the account service. Both the gRPC and the HTTP servers use it, so
// the two surfaces accept exactly the same inputs.
package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned when one or more fields fail validation.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, common.ErrValidation) hold for every Errors value.
func (e Errors) Is(target error) bool {
	return target == common.ErrValidation
}

type Registration struct {
	Email    string `validate:"required,email"`
	Password string `validate:"min=6,hasdigit,hasupper"`
}

type Login struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Update carries optional fields; a nil field is not validated.
type Update struct {
	Email    *string `validate:"omitnil,email"`
	Password *string `validate:"omitnil,min=6,hasdigit,hasupper"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hasdigit", containsAny(unicode.IsDigit))
	_ = v.RegisterValidation("hasupper", containsAny(unicode.IsUpper))
	v.RegisterStructValidation(requireAnyField, Update{})
	return v
}

func containsAny(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func requireAnyField(sl validator.StructLevel) {
	u := sl.Current().Interface().(Update)
	if u.Email == nil && u.Password == nil {
		sl.ReportError(u.Email, "body", "body", "anyfield", "")
	}
}

// Check validates req and returns Errors, or nil when req is acceptable.
func Check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "invalid email"
	case "min":
		return "password must be at least 6 characters long"
	case "hasdigit":
		return "password must contain at least one digit"
	case "hasupper":
		return "password must contain at least one upper-case letter"
	case "anyfield":
		return "at least one of email or password is required"
	case "required":
		if fe.Field() == "Password" {
			return "password is required"
		}
		return "email is required"
	default:
		return "invalid value"
	}
}
