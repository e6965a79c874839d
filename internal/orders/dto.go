package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// ItemInput is one cart line carried into an order submission.
type ItemInput struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Quantity    int
	Options     map[string]any
}

// CustomerInput carries the customer fields snapshotted onto the order.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
}

// DeliveryInput carries the delivery fields snapshotted onto the order.
type DeliveryInput struct {
	Type                enums.DeliveryType
	Address             string
	Date                time.Time
	Time                string
	SpecialInstructions string
}

// PreferencesInput carries how and when the customer wants to be contacted.
type PreferencesInput struct {
	Urgency              enums.Urgency
	ContactMethod        enums.ContactMethod
	PreferredContactTime string
}

// CreateOrderInput is the full order-creation payload after draft validation.
type CreateOrderInput struct {
	UserID      *uuid.UUID
	Items       []ItemInput
	Customer    CustomerInput
	Delivery    DeliveryInput
	Preferences PreferencesInput
}

// Filters describe the inputs supported by the admin order listing.
type Filters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// List wraps a page of orders plus the next page cursor.
type List struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Stats aggregates order counts for the admin dashboard.
type Stats struct {
	Total    int64                        `json:"total"`
	ByStatus map[enums.OrderStatus]int64 `json:"by_status"`
}
