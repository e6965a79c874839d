package auth

import (
	"github.com/Aman2975/hugli-backend/internal/users"
	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoints.
// Identifier accepts either an email address or a phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RegisterRequest contains the payload required to create a customer account.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
	Password string  `json:"password" validate:"required,min=8"`
}

// LoginResponse contains the token and user produced by a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// UpdateProfileRequest carries the mutable profile fields. Omitted fields
// stay unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// ChangePasswordRequest swaps the account password after re-authentication.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// SendOTPRequest asks for a one-time code scoped to a purpose.
type SendOTPRequest struct {
	Identifier string           `json:"identifier" validate:"required"`
	Purpose    enums.OTPPurpose `json:"purpose" validate:"required"`
}

// VerifyOTPRequest redeems a previously issued one-time code.
type VerifyOTPRequest struct {
	Identifier string           `json:"identifier" validate:"required"`
	Purpose    enums.OTPPurpose `json:"purpose" validate:"required"`
	Code       string           `json:"code" validate:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// ResetPasswordRequest finishes the reset flow with the emailed code.
type ResetPasswordRequest struct {
	Identifier  string `json:"identifier" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
