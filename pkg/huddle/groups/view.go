package groups

import (
	"time"

	"github.com/huddleup/huddle/pkg/huddle/hangouts"
	"github.com/huddleup/huddle/pkg/huddle/messages"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// GroupResponse represents a full group document in API responses
type GroupResponse struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Code      string                     `json:"code"`
	Members   []string                   `json:"members"`
	CreatedBy string                     `json:"createdBy"`
	CreatedAt string                     `json:"createdAt"`
	Hangouts  []hangouts.HangoutResponse `json:"hangouts"`
	Messages  []messages.MessageResponse `json:"messages"`
}

// memberUsernames returns a group's member usernames in join order
func memberUsernames(db *gorm.DB, groupID string) ([]string, error) {
	var members []models.GroupMember
	if err := db.Where("group_id = ?", groupID).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}

	usernames := make([]string, len(members))
	for i, member := range members {
		usernames[i] = member.Username
	}
	return usernames, nil
}

// groupToResponse assembles the full rendered view of a group, with members
// in join order and nested hangouts and messages
func groupToResponse(db *gorm.DB, group models.Group) (GroupResponse, error) {
	members, err := memberUsernames(db, group.ID)
	if err != nil {
		return GroupResponse{}, err
	}

	hangoutViews, err := hangouts.ListForGroup(db, group.ID, len(members))
	if err != nil {
		return GroupResponse{}, err
	}

	messageViews, err := messages.ListForGroup(db, group.ID)
	if err != nil {
		return GroupResponse{}, err
	}

	return GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Code:      group.Code,
		Members:   members,
		CreatedBy: group.CreatedBy,
		CreatedAt: group.CreatedAt.UTC().Format(time.RFC3339),
		Hangouts:  hangoutViews,
		Messages:  messageViews,
	}, nil
}
