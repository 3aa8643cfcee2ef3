package models

import "time"

// Group represents a named collection of users sharing hangouts and a chat.
// New members join via the share code. A group is deleted outright when its
// last member leaves, cascading all nested records.
type Group struct {
	ID        string    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	CreatedBy string    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
