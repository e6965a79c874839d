package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// Notification is an admin-facing record created when a new order or
// contact message arrives.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.NotificationKind `gorm:"column:kind;type:text;not null"`
	RefID     uuid.UUID              `gorm:"column:ref_id;type:uuid;not null"`
	Message   string                 `gorm:"column:message;not null"`
	Read      bool                   `gorm:"column:read;not null;default:false"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
