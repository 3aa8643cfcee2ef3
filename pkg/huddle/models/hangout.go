package models

import "time"

// Hangout represents a proposed event within a group.
// Date and time are kept as the client-facing strings; the derived status
// (pending/confirmed/cancelled) is computed per render, never stored.
type Hangout struct {
	ID          string    `gorm:"primarykey" json:"id"`
	GroupID     string    `gorm:"not null;index" json:"groupId"`
	Title       string    `gorm:"not null" json:"title"`
	Date        string    `gorm:"not null" json:"date"`
	Time        string    `gorm:"not null" json:"time"`
	Location    string    `gorm:"not null" json:"location"`
	Description string    `json:"description"`
	ProposedBy  string    `gorm:"not null" json:"proposedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
