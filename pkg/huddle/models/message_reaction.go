package models

import "time"

// MessageReaction represents one username's emoji reaction to a message.
// Reacting again with the same emoji removes the row (toggle semantics).
type MessageReaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MessageID string    `gorm:"not null;uniqueIndex:idx_message_reaction" json:"messageId"`
	Emoji     string    `gorm:"not null;uniqueIndex:idx_message_reaction" json:"emoji"`
	Username  string    `gorm:"not null;uniqueIndex:idx_message_reaction" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
