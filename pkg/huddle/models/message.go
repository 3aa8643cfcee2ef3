package models

import "time"

// Message represents a chat entry in a group.
// Messages are never edited or deleted; only their reactions change.
type Message struct {
	ID        string    `gorm:"primarykey" json:"id"`
	GroupID   string    `gorm:"not null;index" json:"groupId"`
	Text      string    `gorm:"not null" json:"text"`
	Sender    string    `gorm:"not null" json:"sender"`
	CreatedAt time.Time `json:"timestamp"`
}
