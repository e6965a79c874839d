// Package checkout implements the three-step order draft: customer info,
// delivery info, then review and submission. Forward movement is gated by
// per-step validation; moving back is always allowed.
package checkout

import (
	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// Step identifies the active stage of the draft.
type Step int

const (
	StepCustomerInfo Step = 1
	StepDeliveryInfo Step = 2
	StepReview       Step = 3
)

// CustomerInfo holds the step-1 fields.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
}

// DeliveryInfo holds the step-2 fields. DeliveryDate is a YYYY-MM-DD day.
type DeliveryInfo struct {
	DeliveryType        enums.DeliveryType `json:"deliveryType"`
	DeliveryAddress     string             `json:"deliveryAddress,omitempty"`
	DeliveryDate        string             `json:"deliveryDate"`
	DeliveryTime        string             `json:"deliveryTime,omitempty"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

// Preferences holds the contact preferences reviewed at step 3.
type Preferences struct {
	Urgency              enums.Urgency       `json:"urgency,omitempty"`
	ContactMethod        enums.ContactMethod `json:"contactMethod,omitempty"`
	PreferredContactTime string              `json:"preferredContactTime,omitempty"`
}

// Draft is the in-progress order form, persisted between requests.
type Draft struct {
	Step         Step         `json:"step"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	DeliveryInfo DeliveryInfo `json:"deliveryInfo"`
	Preferences  Preferences  `json:"preferences"`
}

// NewDraft starts a draft at step 1.
func NewDraft() *Draft {
	return &Draft{Step: StepCustomerInfo}
}

// Advance validates the current step and moves forward on success. The step
// is left unchanged when validation fails.
func (d *Draft) Advance() error {
	switch d.Step {
	case StepCustomerInfo:
		if err := ValidateCustomerInfo(d.CustomerInfo); err != nil {
			return err
		}
		d.Step = StepDeliveryInfo
	case StepDeliveryInfo:
		if err := ValidateDeliveryInfo(d.DeliveryInfo); err != nil {
			return err
		}
		d.Step = StepReview
	}
	return nil
}

// Back moves to the previous step unconditionally.
func (d *Draft) Back() {
	if d.Step > StepCustomerInfo {
		d.Step--
	}
}
