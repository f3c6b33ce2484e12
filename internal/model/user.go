package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User statuses reported to other clients.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// User represents a registered account. An empty PasswordHash marks an
// OAuth-provisioned account with local password login disabled.
type User struct {
	ID              uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Username        string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255"`
	DisplayName     string     `json:"display_name,omitempty" gorm:"size:100"`
	AvatarURL       string     `json:"avatar_url,omitempty" gorm:"size:250"`
	IsVerified      bool       `json:"is_verified" gorm:"default:false"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	ActivationToken string     `json:"-" gorm:"size:64"`
	ResetToken      string     `json:"-" gorm:"size:64"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	Role            string     `json:"role" gorm:"size:20;default:'user'"`
	Status          string     `json:"status" gorm:"size:20;default:'offline'"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
