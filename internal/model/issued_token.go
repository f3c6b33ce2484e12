package model

import "time"

// IssuedToken is a revocation-ledger entry. A token is accepted only while a
// row with Status=true exists; logout deletes the row. The full signed JWT is
// the lookup key.
type IssuedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"type:varchar(768);uniqueIndex;not null"`
	Status    bool      `json:"status" gorm:"default:true"`
	Message   string    `json:"message" gorm:"size:255;default:'token is valid'"`
	CreatedAt time.Time `json:"created_at"`
}
