package contact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		Name:         "Ada Okafor",
		Email:        "ada@landoffice.example",
		Organization: "Ministry of Lands",
		Message:      "We would like a demo of the registry.",
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validRequest()))
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   FieldErrors
	}{
		{"blank name", func(r *Request) { r.Name = "   " }, FieldErrors{"name": "Name is required"}},
		{"email without at", func(r *Request) { r.Email = "ada.example" }, FieldErrors{"email": "Email must contain @"}},
		{"empty email", func(r *Request) { r.Email = "" }, FieldErrors{"email": "Email must contain @"}},
		{"no organization", func(r *Request) { r.Organization = "" }, FieldErrors{"organization": "Organization is required"}},
		{"short message", func(r *Request) { r.Message = "  too short " }, FieldErrors{"message": "Message must be at least 10 characters"}},
		{"everything", func(r *Request) { *r = Request{} }, FieldErrors{
			"name":         "Name is required",
			"email":        "Email must contain @",
			"organization": "Organization is required",
			"message":      "Message must be at least 10 characters",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			err := Validate(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)

			var fe FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.want, fe)
		})
	}
}

func TestValidate_MessageCountsCharacters(t *testing.T) {
	r := validRequest()
	r.Message = "ñandúñandú" // 10 runes, more bytes
	assert.NoError(t, Validate(r))

	r.Message = "ñandúñand"
	assert.Error(t, Validate(r))
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{"name": "Name is required", "email": "Email must contain @"}
	assert.Equal(t, "invalid contact request: email: Email must contain @; name: Name is required", fe.Error())
}

func TestRequest_Trimmed(t *testing.T) {
	r := Request{Name: " a ", Email: " b@c ", Organization: "\td\n", Message: " e "}
	assert.Equal(t, Request{Name: "a", Email: "b@c", Organization: "d", Message: "e"}, r.Trimmed())
}
