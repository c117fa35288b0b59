package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwadwoankamah/duesflow/internal/dto"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func validDraft() dto.MemberDraft {
	return dto.MemberDraft{
		Name:   "Kwame Mensah",
		Email:  "kwame@example.com",
		Phone:  "+233 24 123 4567",
		Region: "Greater Accra",
	}
}

func TestValidateMember_Valid(t *testing.T) {
	v := newValidator(t)

	errs := v.ValidateMember(validDraft())
	assert.Empty(t, errs)
}

func TestValidateMember_RequiredFields(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		mutate  func(*dto.MemberDraft)
		field   string
		message string
	}{
		{
			name:    "empty name",
			mutate:  func(d *dto.MemberDraft) { d.Name = "" },
			field:   "name",
			message: "Name is required",
		},
		{
			name:    "whitespace only name",
			mutate:  func(d *dto.MemberDraft) { d.Name = "   " },
			field:   "name",
			message: "Name is required",
		},
		{
			name:    "empty email",
			mutate:  func(d *dto.MemberDraft) { d.Email = "" },
			field:   "email",
			message: "Email is required",
		},
		{
			name:    "empty phone",
			mutate:  func(d *dto.MemberDraft) { d.Phone = "\t " },
			field:   "phone",
			message: "Phone is required",
		},
		{
			name:    "empty region",
			mutate:  func(d *dto.MemberDraft) { d.Region = "" },
			field:   "region",
			message: "Please select a region",
		},
		{
			name:    "region filter sentinel",
			mutate:  func(d *dto.MemberDraft) { d.Region = "All Regions" },
			field:   "region",
			message: "Please select a region",
		},
		{
			name:    "unknown region",
			mutate:  func(d *dto.MemberDraft) { d.Region = "Atlantis" },
			field:   "region",
			message: "Please select a region",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			errs := v.ValidateMember(draft)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidateMember_AllErrorsReported(t *testing.T) {
	v := newValidator(t)

	errs := v.ValidateMember(dto.MemberDraft{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "region")
}

func TestValidateMember_EmailShape(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"kwame@example.com", true},
		{"no-at-sign", false},
		{"missing@domain", false},
		{"@nodomain.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			draft := validDraft()
			draft.Email = tt.email

			errs := v.ValidateMember(draft)
			if tt.valid {
				assert.NotContains(t, errs, "email")
			} else {
				assert.Equal(t, "Please enter a valid email", errs["email"])
			}
		})
	}
}

func TestValidateMember_ProfilePictureSize(t *testing.T) {
	v := newValidator(t)

	draft := validDraft()
	draft.ProfilePictureSize = 5*1024*1024 + 1

	errs := v.ValidateMember(draft)
	assert.Equal(t, "Image must be less than 5MB", errs["profilePicture"])

	draft.ProfilePictureSize = 5 * 1024 * 1024
	assert.NotContains(t, v.ValidateMember(draft), "profilePicture")
}

func TestValidatePayment(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		phone   string
		message string
	}{
		{"international format", "+233241234567", ""},
		{"local format", "0241234567", ""},
		{"spaces stripped", "+233 24 123 4567", ""},
		{"carrier prefix 54", "0541234567", ""},
		{"carrier prefix 59", "0591234567", ""},
		{"too short", "123456", "Invalid MTN number format"},
		{"wrong carrier prefix", "0201234567", "Invalid MTN number format"},
		{"missing", "", "Phone number is required"},
		{"letters", "024abc4567", "Invalid MTN number format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidatePayment(dto.PaymentDraft{PhoneNumber: tt.phone})
			if tt.message == "" {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, tt.message, errs["phoneNumber"])
			}
		})
	}
}
