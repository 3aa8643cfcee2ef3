package models

import "time"

// GroupMember represents one username's membership in a group.
// Row order (ascending ID) preserves join order, which is the order
// members are rendered in.
type GroupMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	GroupID   string    `gorm:"not null;uniqueIndex:idx_group_member" json:"groupId"`
	Username  string    `gorm:"not null;uniqueIndex:idx_group_member" json:"username"`
	CreatedAt time.Time `json:"joinedAt"`
}
