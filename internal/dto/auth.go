package dto

// SignupRequest is the payload of POST /auth/signup.
type SignupRequest struct {
	Email                string `json:"email" validate:"required,email,max=254"`
	Username             string `json:"username" validate:"required,min=3,max=32"`
	Password             string `json:"password" validate:"required,min=8,max=32"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required"`
}

// LoginRequest represents the login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32"`
}

// RefreshTokenRequest carries a refresh token for rotation or logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyResetTokenRequest checks a reset code without consuming it.
type VerifyResetTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required,numeric,max=32"`
}

// ResetPasswordRequest sets a new password using a reset code.
type ResetPasswordRequest struct {
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=32"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,min=8,max=32"`
	Email              string `json:"email" validate:"required,email"`
}

// GoogleExchangeCodeRequest defines the expected JSON body for /auth/google/exchange-code.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// GoogleIDTokenRequest carries an ID token obtained directly by the client.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}
