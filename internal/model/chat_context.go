package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatContext links a user to one conversation held by the chat pipeline.
// Only the title is mutable; the context id is an opaque handle.
type ChatContext struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);index;not null"`
	ContextID string    `json:"context_id" gorm:"size:100;not null"`
	ChatTitle string    `json:"chat_title" gorm:"size:255;default:'New Chat'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
