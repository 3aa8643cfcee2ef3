package models

import "time"

// User represents a person known to the instance.
// Users are created on first login and never mutated or deleted afterwards.
// Usernames are compared case-insensitively but stored as the client sent them.
type User struct {
	ID        string    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
