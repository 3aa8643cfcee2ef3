package messages

import (
	"time"

	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// MessageResponse represents a chat message in API responses
type MessageResponse struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Sender    string              `json:"sender"`
	Timestamp string              `json:"timestamp"`
	Reactions map[string][]string `json:"reactions"`
}

func messageToResponse(message models.Message, reactions []models.MessageReaction) MessageResponse {
	grouped := make(map[string][]string)
	for _, reaction := range reactions {
		grouped[reaction.Emoji] = append(grouped[reaction.Emoji], reaction.Username)
	}

	return MessageResponse{
		ID:        message.ID,
		Text:      message.Text,
		Sender:    message.Sender,
		Timestamp: message.CreatedAt.UTC().Format(time.RFC3339),
		Reactions: grouped,
	}
}

// ListForGroup renders all messages in a group in send order.
func ListForGroup(db *gorm.DB, groupID string) ([]MessageResponse, error) {
	var messageRows []models.Message
	if err := db.Where("group_id = ?", groupID).Order("created_at").Find(&messageRows).Error; err != nil {
		return nil, err
	}

	views := make([]MessageResponse, len(messageRows))
	for i, message := range messageRows {
		var reactions []models.MessageReaction
		if err := db.Where("message_id = ?", message.ID).Order("id").Find(&reactions).Error; err != nil {
			return nil, err
		}
		views[i] = messageToResponse(message, reactions)
	}
	return views, nil
}
