// Package validate provides the synchronous field-level validation rules
// shared by the login, signup, password reset and verification flows.
//
// Each rule checks its conditions in a fixed order and the first failing
// condition's message wins; the messages are the exact strings surfaced to
// the user.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nafisahi/swiftaid/internal/models"
)

// emailPattern requires a 2-64 character alphabetic top-level domain.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// Field error variables. The message text is user-facing.
var (
	ErrEmailRequired      = errors.New("Email is required")
	ErrEmailInvalid       = errors.New("Invalid email format")
	ErrPasswordRequired   = errors.New("Password is required")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters")
	ErrPasswordNeedsDigit = errors.New("Password must contain at least one number")
	ErrPasswordNeedsUpper = errors.New("Password must contain at least one uppercase letter")
	ErrConfirmRequired    = errors.New("Please confirm your password")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrNameRequired       = errors.New("This field is required")
	ErrNameTooShort       = errors.New("Must be at least 2 characters")
	ErrCodeInvalid        = errors.New("Code must be 6 digits")
)

// Email checks presence first, then shape.
func Email(value string) error {
	if value == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(value) {
		return ErrEmailInvalid
	}
	return nil
}

// LoginPassword requires presence and a minimum length only; existing
// accounts may predate the composition rules.
func LoginPassword(value string) error {
	if value == "" {
		return ErrPasswordRequired
	}
	// Length rules count characters, not bytes.
	if utf8.RuneCountInString(value) < models.MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// SignupPassword additionally requires at least one digit and one uppercase
// letter, checked in that order.
func SignupPassword(value string) error {
	if err := LoginPassword(value); err != nil {
		return err
	}
	if !strings.ContainsFunc(value, unicode.IsDigit) {
		return ErrPasswordNeedsDigit
	}
	if !strings.ContainsFunc(value, unicode.IsUpper) {
		return ErrPasswordNeedsUpper
	}
	return nil
}

// ConfirmPassword requires presence and equality with the password field.
func ConfirmPassword(password, confirm string) error {
	if confirm == "" {
		return ErrConfirmRequired
	}
	if confirm != password {
		return ErrPasswordMismatch
	}
	return nil
}

// Name validates first/last name fields.
func Name(value string) error {
	if value == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(value) < models.MinNameLength {
		return ErrNameTooShort
	}
	return nil
}

// VerificationCode requires exactly six digits.
func VerificationCode(value string) error {
	if len(value) != models.VerificationCodeLength {
		return ErrCodeInvalid
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return ErrCodeInvalid
		}
	}
	return nil
}

// Form aggregates per-field results for one screen. Aggregate validity is
// the logical AND of every checked field; fields keep their own errors.
type Form struct {
	errs  map[string]error
	order []string
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{errs: make(map[string]error)}
}

// Check records the validation result for a named field. Re-checking a
// field replaces its previous result, matching live revalidation on change.
func (f *Form) Check(field string, err error) *Form {
	if _, seen := f.errs[field]; !seen {
		f.order = append(f.order, field)
	}
	f.errs[field] = err
	return f
}

// Valid reports whether every checked field passed.
func (f *Form) Valid() bool {
	for _, err := range f.errs {
		if err != nil {
			return false
		}
	}
	return true
}

// FieldError returns the recorded error for a field, nil if it passed or
// was never checked.
func (f *Form) FieldError(field string) error {
	return f.errs[field]
}

// Messages returns the user-facing message per failing field, in the order
// fields were first checked.
func (f *Form) Messages() map[string]string {
	out := make(map[string]string)
	for _, field := range f.order {
		if err := f.errs[field]; err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

// SignupForm validates the full signup screen.
func SignupForm(req models.SignupRequest) *Form {
	return NewForm().
		Check("first_name", Name(req.FirstName)).
		Check("surname", Name(req.Surname)).
		Check("email", Email(req.Email)).
		Check("password", SignupPassword(req.Password)).
		Check("confirm_password", ConfirmPassword(req.Password, req.ConfirmPassword))
}

// LoginForm validates the login screen.
func LoginForm(req models.LoginRequest) *Form {
	return NewForm().
		Check("email", Email(req.Email)).
		Check("password", LoginPassword(req.Password))
}

// ResetForm validates the password reset screen.
func ResetForm(req models.ResetRequest) *Form {
	return NewForm().Check("email", Email(req.Email))
}
