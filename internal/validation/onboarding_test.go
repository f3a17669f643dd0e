package validation

import (
	"testing"

	"onramp/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUserRegistrationValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantOK   bool
	}{
		{"valid", "ada@example.com", "s3curepass", true},
		{"missing email", "", "s3curepass", false},
		{"malformed email", "not-an-email", "s3curepass", false},
		{"missing password", "ada@example.com", "", false},
		{"short password", "ada@example.com", "a1", false},
		{"password without digit", "ada@example.com", "passwordonly", false},
		{"password without letter", "ada@example.com", "12345678", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.UserRegistration(&models.RegisterRequest{Email: tt.email, Password: tt.password})
			assert.Equal(t, tt.wantOK, v.Valid(), "errors: %v", v.Errors)
		})
	}
}

func TestOnboardingStartValidation(t *testing.T) {
	v := New()
	v.OnboardingStart(&models.OnboardingStartRequest{Email: "ada@example.com"})
	assert.True(t, v.Valid())

	v = New()
	v.OnboardingStart(&models.OnboardingStartRequest{})
	assert.Contains(t, v.Errors, "email")
}
