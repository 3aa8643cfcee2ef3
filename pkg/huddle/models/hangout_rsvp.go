package models

import "time"

// RSVPStatus represents a member's attendance response to a hangout
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPMaybe    RSVPStatus = "maybe"
	RSVPNotGoing RSVPStatus = "notGoing"
)

// HangoutRSVP represents one username's current response to a hangout.
// A new response from the same username overwrites the old one.
type HangoutRSVP struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	HangoutID string     `gorm:"not null;uniqueIndex:idx_hangout_rsvp" json:"hangoutId"`
	Username  string     `gorm:"not null;uniqueIndex:idx_hangout_rsvp" json:"username"`
	Status    RSVPStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
