package enums

import "fmt"

// ContactMethod is the customer's preferred channel for order updates.
type ContactMethod string

const (
	ContactMethodPhone    ContactMethod = "phone"
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
)

var validContactMethods = []ContactMethod{
	ContactMethodPhone,
	ContactMethodEmail,
	ContactMethodWhatsApp,
}

// String implements fmt.Stringer.
func (m ContactMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ContactMethod.
func (m ContactMethod) IsValid() bool {
	for _, candidate := range validContactMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseContactMethod converts raw input into a ContactMethod.
func ParseContactMethod(value string) (ContactMethod, error) {
	for _, candidate := range validContactMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact method %q", value)
}
