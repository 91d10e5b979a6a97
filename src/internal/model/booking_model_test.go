package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		in    string
		first string
		last  string
	}{
		{"John Smith", "John", "Smith"},
		{"John", "John", ""},
		{"  Maria  van der Berg ", "Maria", "van der Berg"},
		{"", "", ""},
	}

	for _, tc := range tests {
		first, last := SplitFullName(tc.in)
		assert.Equal(t, tc.first, first, "input %q", tc.in)
		assert.Equal(t, tc.last, last, "input %q", tc.in)
	}
}

func TestNormalizeLegacyShape(t *testing.T) {
	request := &CreateBookingRequest{
		MainPassenger: &MainPassengerRequest{
			FullName: "Jane Example Doe",
			Phone:    "+49123456",
			Email:    "jane@example.com",
		},
	}

	request.Normalize()

	require.NotNil(t, request.LeadPassenger)
	assert.Equal(t, "Jane", request.LeadPassenger.FirstName)
	assert.Equal(t, "Example Doe", request.LeadPassenger.LastName)
	assert.Equal(t, "jane@example.com", request.LeadPassenger.Email)
	assert.Equal(t, "+49123456", request.LeadPassenger.Phone)
}

func TestNormalizeDoesNotOverrideCanonicalShape(t *testing.T) {
	request := &CreateBookingRequest{
		LeadPassenger: &LeadPassengerRequest{FirstName: "Ana", LastName: "Lopez"},
		MainPassenger: &MainPassengerRequest{FullName: "Someone Else"},
	}

	request.Normalize()

	assert.Equal(t, "Ana", request.LeadPassenger.FirstName)
	assert.Equal(t, "Lopez", request.LeadPassenger.LastName)
}

func TestNormalizeDefaults(t *testing.T) {
	request := &CreateBookingRequest{PromoCode: "  summer10 "}
	request.Normalize()

	assert.Equal(t, "FROM_AIRPORT", request.Direction)
	assert.Equal(t, "DIRECT", request.Channel)
	assert.Equal(t, "PAY_LATER", request.PaymentMethod)
	assert.Equal(t, "SUMMER10", request.PromoCode)
}

func TestModifyRequestHasChanges(t *testing.T) {
	empty := &ModifyBookingRequest{Email: "a@b.c"}
	assert.False(t, empty.HasChanges())

	flight := "LH123"
	withField := &ModifyBookingRequest{Email: "a@b.c", FlightNumber: &flight}
	assert.True(t, withField.HasChanges())
}
