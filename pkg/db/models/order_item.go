package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/pkg/types"
)

// OrderItem snapshots one cart line at submission time. Options hold the
// user-selected variant mapping (size, finish, paper type, ...).
type OrderItem struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID     `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   string        `gorm:"column:product_id;not null"`
	ProductName string        `gorm:"column:product_name;not null"`
	ProductIcon *string       `gorm:"column:product_icon"`
	Description *string       `gorm:"column:description"`
	Quantity    int           `gorm:"column:quantity;not null"`
	Options     types.JSONMap `gorm:"column:options;type:jsonb;serializer:json"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
