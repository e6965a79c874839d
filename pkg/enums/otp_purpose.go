package enums

import "fmt"

// OTPPurpose scopes one-time codes so a login code cannot reset a password.
type OTPPurpose string

const (
	OTPPurposeLogin         OTPPurpose = "login"
	OTPPurposeEmailVerify   OTPPurpose = "email_verify"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

var validOTPPurposes = []OTPPurpose{
	OTPPurposeLogin,
	OTPPurposeEmailVerify,
	OTPPurposePasswordReset,
}

// String implements fmt.Stringer.
func (p OTPPurpose) String() string {
	return string(p)
}

// IsValid reports whether the value is a known OTPPurpose.
func (p OTPPurpose) IsValid() bool {
	for _, candidate := range validOTPPurposes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseOTPPurpose converts raw input into an OTPPurpose.
func ParseOTPPurpose(value string) (OTPPurpose, error) {
	for _, candidate := range validOTPPurposes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid otp purpose %q", value)
}
