package model

import "time"

// User is a directory account. Username is optional; when present it must be
// unique, which a nullable unique index gives us (NULLs do not collide).
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:128" json:"fullName,omitempty"`
	Username     *string   `gorm:"size:64;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
