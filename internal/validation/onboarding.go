package validation

import "onramp/internal/models"

// UserRegistration validates a registration request. Phone is optional and
// never changes acceptance.
func (v *Validator) UserRegistration(req *models.RegisterRequest) {
	v.Required("email", req.Email)
	if req.Email != "" {
		v.Email("email", req.Email)
		v.MaxLength("email", req.Email, MaxEmailLength)
	}
	v.Required("password", req.Password)
	if req.Password != "" {
		v.Password("password", req.Password)
	}
}

// Login validates a login request.
func (v *Validator) Login(req *models.LoginRequest) {
	v.Required("email", req.Email)
	if req.Email != "" {
		v.Email("email", req.Email)
	}
	v.Required("password", req.Password)
}

// OnboardingStart validates an onboarding start request.
func (v *Validator) OnboardingStart(req *models.OnboardingStartRequest) {
	v.Required("email", req.Email)
	if req.Email != "" {
		v.Email("email", req.Email)
		v.MaxLength("email", req.Email, MaxEmailLength)
	}
}
