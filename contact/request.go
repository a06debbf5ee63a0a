package contact

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MinMessageLen is the minimum message length in characters.
const MinMessageLen = 10

// ErrInvalidRequest is wrapped by FieldErrors.
var ErrInvalidRequest = errors.New("invalid contact request")

// Request is a contact form submission as entered by the visitor.
type Request struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,contains=@"`
	Organization string `json:"organization" validate:"required"`
	Message      string `json:"message" validate:"required,min=10"`
}

// Trimmed returns the request with surrounding whitespace removed.
func (r Request) Trimmed() Request {
	return Request{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.TrimSpace(r.Email),
		Organization: strings.TrimSpace(r.Organization),
		Message:      strings.TrimSpace(r.Message),
	}
}

// FieldErrors maps a JSON field name to a human readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + fe[f]
	}
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, strings.Join(parts, "; "))
}

func (fe FieldErrors) Unwrap() error { return ErrInvalidRequest }

var messages = map[string]string{
	"name":         "Name is required",
	"email":        "Email must contain @",
	"organization": "Organization is required",
	"message":      fmt.Sprintf("Message must be at least %d characters", MinMessageLen),
}

// Validator checks contact requests.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator that reports errors by JSON field name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate trims r and checks every field. It returns nil or FieldErrors.
func (v *Validator) Validate(r Request) error {
	err := v.v.Struct(r.Trimmed())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		fe[e.Field()] = messages[e.Field()]
	}
	return fe
}

var defaultValidator = NewValidator()

// Validate checks r with the package default validator.
func Validate(r Request) error {
	return defaultValidator.Validate(r)
}

// Submission is an accepted request ready for delivery.
type Submission struct {
	ID         string    `json:"id"`
	Request    Request   `json:"request"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func newSubmission(r Request, now time.Time) Submission {
	return Submission{ID: uuid.NewString(), Request: r.Trimmed(), ReceivedAt: now.UTC()}
}
