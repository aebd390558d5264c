package dto

// OTPRequest asks for a verification code.
type OTPRequest struct {
	Phone string `json:"phone"`
}

// OTPVerifyRequest submits a received code.
type OTPVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// RegisterRequest completes a new-user registration.
type RegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UserResponse describes the signed-in user profile.
type UserResponse struct {
	ID    int64  `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// AuthResponse reports the verification outcome. Token and User are absent
// for the "new" outcome.
type AuthResponse struct {
	Outcome string        `json:"outcome"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user,omitempty"`
}
