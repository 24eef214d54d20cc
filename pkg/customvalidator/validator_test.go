package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Document string  `validate:"omitempty,document_number"`
	Phone    string  `validate:"omitempty,phone_intl"`
	Email    string  `validate:"omitempty,email"`
	Rating   float64 `validate:"omitempty,rating"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestDocumentNumber(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{Document: "12345678000199"}))
	assert.NoError(t, v.Struct(sample{Document: "12.345.678/0001-99"}))
	assert.NoError(t, v.Struct(sample{Document: "123.456.789-09"}))
	assert.Error(t, v.Struct(sample{Document: "12345"}))
}

func TestPhoneIntl(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{Phone: "+551199999999"}))
	assert.NoError(t, v.Struct(sample{Phone: "+55 (11) 9999-9999"}))
	assert.Error(t, v.Struct(sample{Phone: "11999999999"}))
	assert.Error(t, v.Struct(sample{Phone: "+55"}))
}

func TestEmail(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{Email: "a@acme.com"}))
	assert.Error(t, v.Struct(sample{Email: "acme.com"}))
}

func TestRating(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{Rating: 1}))
	assert.NoError(t, v.Struct(sample{Rating: 4.5}))
	assert.Error(t, v.Struct(sample{Rating: 5.5}))
	assert.Error(t, v.Struct(sample{Rating: 0.5}))
}
