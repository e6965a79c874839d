package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// ContactMessage is a public enquiry submitted through the contact form.
type ContactMessage struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string              `gorm:"column:name;not null"`
	Email       *string             `gorm:"column:email"`
	Phone       *string             `gorm:"column:phone"`
	Company     *string             `gorm:"column:company"`
	Subject     *string             `gorm:"column:subject"`
	Message     *string             `gorm:"column:message"`
	ServiceType *string             `gorm:"column:service_type"`
	Status      enums.ContactStatus `gorm:"column:status;type:text;not null;default:'new'"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
