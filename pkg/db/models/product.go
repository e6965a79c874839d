package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aman2975/hugli-backend/pkg/types"
)

// Product is a print-product category (visiting cards, stickers, ...).
// OptionChoices lists the selectable variants per option key, e.g.
// {"size": ["small", "medium", "large"]}.
type Product struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug          string              `gorm:"column:slug;not null;uniqueIndex"`
	Name          string              `gorm:"column:name;not null"`
	Description   *string             `gorm:"column:description"`
	Icon          *string             `gorm:"column:icon"`
	BasePrice     decimal.NullDecimal `gorm:"column:base_price;type:numeric(12,2)"`
	OptionChoices types.JSONMap       `gorm:"column:option_choices;type:jsonb;serializer:json"`
	IsActive      bool                `gorm:"column:is_active;not null;default:true"`
	SortOrder     int                 `gorm:"column:sort_order;not null;default:0"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
