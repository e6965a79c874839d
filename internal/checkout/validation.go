package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/Aman2975/hugli-backend/pkg/enums"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]{10,}$`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// ValidateCustomerInfo checks the step-1 fields. All failures are collected
// so the caller can surface every problem at once.
func ValidateCustomerInfo(info CustomerInfo) error {
	var errs error
	if strings.TrimSpace(info.Name) == "" {
		errs = multierr.Append(errs, fmt.Errorf("name is required"))
	}
	if !emailPattern.MatchString(strings.TrimSpace(info.Email)) {
		errs = multierr.Append(errs, fmt.Errorf("email must look like local@domain.tld"))
	}
	if !validPhone(info.Phone) {
		errs = multierr.Append(errs, fmt.Errorf("phone must contain at least 10 digits"))
	}
	return asValidationError(errs)
}

// ValidateDeliveryInfo checks the step-2 fields. The delivery date may be
// today or later; a delivery address is needed only for delivery orders.
func ValidateDeliveryInfo(info DeliveryInfo) error {
	var errs error

	deliveryType := info.DeliveryType
	if deliveryType == "" {
		deliveryType = enums.DeliveryTypePickup
	}
	if !deliveryType.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid delivery type %q", info.DeliveryType))
	}
	if deliveryType == enums.DeliveryTypeDelivery && strings.TrimSpace(info.DeliveryAddress) == "" {
		errs = multierr.Append(errs, fmt.Errorf("delivery address is required for delivery orders"))
	}

	if strings.TrimSpace(info.DeliveryDate) == "" {
		errs = multierr.Append(errs, fmt.Errorf("delivery date is required"))
	} else if date, err := ParseDeliveryDate(info.DeliveryDate); err != nil {
		errs = multierr.Append(errs, err)
	} else if date.Before(todayUTC()) {
		errs = multierr.Append(errs, fmt.Errorf("delivery date cannot be in the past"))
	}

	return asValidationError(errs)
}

// ValidatePreferences checks the optional step-3 preference enums.
func ValidatePreferences(prefs Preferences) error {
	var errs error
	if prefs.Urgency != "" && !prefs.Urgency.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid urgency %q", prefs.Urgency))
	}
	if prefs.ContactMethod != "" && !prefs.ContactMethod.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid contact method %q", prefs.ContactMethod))
	}
	return asValidationError(errs)
}

// ParseDeliveryDate parses the YYYY-MM-DD form used by the order form.
func ParseDeliveryDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("delivery date must be YYYY-MM-DD")
	}
	return date, nil
}

func validPhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	if !phonePattern.MatchString(trimmed) {
		return false
	}
	return len(digitPattern.FindAllString(trimmed, -1)) >= 10
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func asValidationError(errs error) error {
	if errs == nil {
		return nil
	}
	details := make([]string, 0)
	for _, err := range multierr.Errors(errs) {
		details = append(details, err.Error())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "draft validation failed").
		WithDetails(map[string]any{"errors": details})
}
