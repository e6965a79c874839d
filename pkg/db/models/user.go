package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aman2975/hugli-backend/pkg/enums"
)

// User is a registered customer or shop admin. Either email or phone can
// serve as the login identifier; at least one is always present.
type User struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Email         *string        `gorm:"column:email;uniqueIndex"`
	Phone         *string        `gorm:"column:phone;uniqueIndex"`
	Company       *string        `gorm:"column:company"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Role          enums.UserRole `gorm:"column:role;type:text;not null;default:'customer'"`
	EmailVerified bool           `gorm:"column:email_verified;not null;default:false"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
	Addresses     []UserAddress  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
