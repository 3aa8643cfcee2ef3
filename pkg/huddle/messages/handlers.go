package messages

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles chat message requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new messages handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SendMessageRequest represents the request to send a chat message
type SendMessageRequest struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ReactRequest represents an emoji reaction toggle
type ReactRequest struct {
	Username string `json:"username"`
	Emoji    string `json:"emoji"`
}

func (h *Handler) renderMessage(message models.Message) (MessageResponse, error) {
	var reactions []models.MessageReaction
	if err := h.db.Where("message_id = ?", message.ID).Order("id").Find(&reactions).Error; err != nil {
		return MessageResponse{}, err
	}
	return messageToResponse(message, reactions), nil
}

// List returns all messages in a group in send order
func (h *Handler) List(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	list, err := ListForGroup(h.db, group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": list})
}

// Send appends a chat message to a group
func (h *Handler) Send(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(req.Text)
	sender := strings.TrimSpace(req.Sender)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}
	if sender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sender username is required"})
		return
	}

	message := models.Message{
		ID:      uuid.New().String(),
		GroupID: group.ID,
		Text:    text,
		Sender:  sender,
	}
	if err := h.db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	list, err := ListForGroup(h.db, group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": messageToResponse(message, nil), "messages": list})
}

// React toggles a username's emoji reaction on a message
func (h *Handler) React(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var message models.Message
	if err := h.db.Where("id = ? AND group_id = ?", c.Param("messageId"), group.ID).First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	emoji := strings.TrimSpace(req.Emoji)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}
	if emoji == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Emoji is required"})
		return
	}

	// Toggle: a second identical reaction removes the first
	var existing models.MessageReaction
	err := h.db.Where("message_id = ? AND emoji = ? AND LOWER(username) = LOWER(?)", message.ID, emoji, username).First(&existing).Error
	if err == nil {
		if err := h.db.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		reaction := models.MessageReaction{
			MessageID: message.ID,
			Emoji:     emoji,
			Username:  username,
		}
		if err := h.db.Create(&reaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
			return
		}
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
		return
	}

	view, err := h.renderMessage(message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": view})
}

// RegisterRoutes registers message routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/groups/:id/messages", h.List)
	rg.POST("/groups/:id/messages", h.Send)
	rg.POST("/groups/:id/messages/:messageId/react", h.React)
}
