package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// Order is a submitted print job request. Customer, delivery, and
// preference fields are snapshotted from the order draft at submission
// time; status moves only through admin-initiated transitions.
type Order struct {
	ID                   uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID               *uuid.UUID          `gorm:"column:user_id;type:uuid;index"`
	Status               enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	CustomerName         string              `gorm:"column:customer_name;not null"`
	CustomerEmail        string              `gorm:"column:customer_email;not null"`
	CustomerPhone        string              `gorm:"column:customer_phone;not null"`
	CustomerCompany      *string             `gorm:"column:customer_company"`
	CustomerAddress      *string             `gorm:"column:customer_address"`
	DeliveryType         enums.DeliveryType  `gorm:"column:delivery_type;type:text;not null;default:'pickup'"`
	DeliveryAddress      *string             `gorm:"column:delivery_address"`
	DeliveryDate         time.Time           `gorm:"column:delivery_date;not null"`
	DeliveryTime         *string             `gorm:"column:delivery_time"`
	SpecialInstructions  *string             `gorm:"column:special_instructions"`
	Urgency              enums.Urgency       `gorm:"column:urgency;type:text;not null;default:'normal'"`
	ContactMethod        enums.ContactMethod `gorm:"column:contact_method;type:text;not null;default:'phone'"`
	PreferredContactTime *string             `gorm:"column:preferred_contact_time"`
	EstimatedTotal       decimal.NullDecimal `gorm:"column:estimated_total;type:numeric(12,2)"`
	Items                []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
