package importexport

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles document import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Document is the flat interchange format: the entire instance as one
// JSON object with fully nested groups
type Document struct {
	Users  []ExportedUser  `json:"users"`
	Groups []ExportedGroup `json:"groups"`
}

// ExportedUser represents a user in the interchange document
type ExportedUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// ExportedGroup represents a group with all nested records
type ExportedGroup struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Code      string            `json:"code"`
	Members   []string          `json:"members"`
	CreatedBy string            `json:"createdBy"`
	CreatedAt string            `json:"createdAt"`
	Hangouts  []ExportedHangout `json:"hangouts"`
	Messages  []ExportedMessage `json:"messages"`
}

// ExportedHangout represents a hangout and its responses; the derived
// status is recomputed on render and never part of the document
type ExportedHangout struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	ProposedBy  string            `json:"proposedBy"`
	CreatedAt   string            `json:"createdAt"`
	Responses   map[string]string `json:"responses"`
}

// ExportedMessage represents a chat message and its reactions
type ExportedMessage struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Sender    string              `json:"sender"`
	Timestamp string              `json:"timestamp"`
	Reactions map[string][]string `json:"reactions"`
}

// ImportCounts breaks an import result down by collection
type ImportCounts struct {
	Users  int `json:"users"`
	Groups int `json:"groups"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported ImportCounts `json:"imported"`
	Skipped  ImportCounts `json:"skipped"`
	Errors   []string     `json:"errors,omitempty"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp reads an RFC3339 timestamp, falling back to now for
// blank or unparseable values
func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Now()
	}
	return parsed
}

// Export renders the entire instance as one flat document
func (h *Handler) Export(c *gin.Context) {
	doc, err := h.buildDocument()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export document"})
		return
	}

	// Set content disposition for download
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=huddle-export.json")
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) buildDocument() (Document, error) {
	doc := Document{
		Users:  []ExportedUser{},
		Groups: []ExportedGroup{},
	}

	var users []models.User
	if err := h.db.Order("created_at").Find(&users).Error; err != nil {
		return doc, err
	}
	for _, user := range users {
		doc.Users = append(doc.Users, ExportedUser{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: formatTimestamp(user.CreatedAt),
		})
	}

	var groups []models.Group
	if err := h.db.Order("created_at").Find(&groups).Error; err != nil {
		return doc, err
	}
	for _, group := range groups {
		exported, err := h.exportGroup(group)
		if err != nil {
			return doc, err
		}
		doc.Groups = append(doc.Groups, exported)
	}

	return doc, nil
}

func (h *Handler) exportGroup(group models.Group) (ExportedGroup, error) {
	exported := ExportedGroup{
		ID:        group.ID,
		Name:      group.Name,
		Code:      group.Code,
		Members:   []string{},
		CreatedBy: group.CreatedBy,
		CreatedAt: formatTimestamp(group.CreatedAt),
		Hangouts:  []ExportedHangout{},
		Messages:  []ExportedMessage{},
	}

	var members []models.GroupMember
	if err := h.db.Where("group_id = ?", group.ID).Order("id").Find(&members).Error; err != nil {
		return exported, err
	}
	for _, member := range members {
		exported.Members = append(exported.Members, member.Username)
	}

	var hangouts []models.Hangout
	if err := h.db.Where("group_id = ?", group.ID).Order("created_at").Find(&hangouts).Error; err != nil {
		return exported, err
	}
	for _, hangout := range hangouts {
		responses := make(map[string]string)
		var rsvps []models.HangoutRSVP
		if err := h.db.Where("hangout_id = ?", hangout.ID).Order("id").Find(&rsvps).Error; err != nil {
			return exported, err
		}
		for _, rsvp := range rsvps {
			responses[rsvp.Username] = string(rsvp.Status)
		}
		exported.Hangouts = append(exported.Hangouts, ExportedHangout{
			ID:          hangout.ID,
			Title:       hangout.Title,
			Date:        hangout.Date,
			Time:        hangout.Time,
			Location:    hangout.Location,
			Description: hangout.Description,
			ProposedBy:  hangout.ProposedBy,
			CreatedAt:   formatTimestamp(hangout.CreatedAt),
			Responses:   responses,
		})
	}

	var msgs []models.Message
	if err := h.db.Where("group_id = ?", group.ID).Order("created_at").Find(&msgs).Error; err != nil {
		return exported, err
	}
	for _, message := range msgs {
		reactions := make(map[string][]string)
		var rows []models.MessageReaction
		if err := h.db.Where("message_id = ?", message.ID).Order("id").Find(&rows).Error; err != nil {
			return exported, err
		}
		for _, reaction := range rows {
			reactions[reaction.Emoji] = append(reactions[reaction.Emoji], reaction.Username)
		}
		exported.Messages = append(exported.Messages, ExportedMessage{
			ID:        message.ID,
			Text:      message.Text,
			Sender:    message.Sender,
			Timestamp: formatTimestamp(message.CreatedAt),
			Reactions: reactions,
		})
	}

	return exported, nil
}

// Import merges a flat document into the instance. Users whose username
// already exists are skipped, as are groups whose code already exists;
// everything else is recreated with ids preserved where present.
func (h *Handler) Import(c *gin.Context) {
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{
		Errors: []string{},
	}

	for _, user := range doc.Users {
		username := strings.TrimSpace(user.Username)
		if username == "" {
			result.Skipped.Users++
			continue
		}

		var existing models.User
		if err := h.db.Where("LOWER(username) = LOWER(?)", username).First(&existing).Error; err == nil {
			result.Skipped.Users++
			continue
		}

		record := models.User{
			ID:        user.ID,
			Username:  username,
			CreatedAt: parseTimestamp(user.CreatedAt),
		}
		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		if err := h.db.Create(&record).Error; err != nil {
			result.Errors = append(result.Errors, "user "+username+": "+err.Error())
			result.Skipped.Users++
			continue
		}
		result.Imported.Users++
	}

	for _, group := range doc.Groups {
		code := strings.TrimSpace(group.Code)
		if code == "" || strings.TrimSpace(group.Name) == "" {
			result.Skipped.Groups++
			continue
		}

		var existing models.Group
		if err := h.db.Where("UPPER(code) = UPPER(?)", code).First(&existing).Error; err == nil {
			result.Skipped.Groups++
			continue
		}

		if err := h.importGroup(group); err != nil {
			result.Errors = append(result.Errors, "group "+code+": "+err.Error())
			result.Skipped.Groups++
			continue
		}
		result.Imported.Groups++
	}

	c.JSON(http.StatusOK, result)
}

// importGroup recreates one exported group and all its nested records
// in a transaction, so a bad group never lands half-imported
func (h *Handler) importGroup(group ExportedGroup) error {
	return h.db.Transaction(func(tx *gorm.DB) error {
		record := models.Group{
			ID:        group.ID,
			Name:      group.Name,
			Code:      strings.ToUpper(strings.TrimSpace(group.Code)),
			CreatedBy: group.CreatedBy,
			CreatedAt: parseTimestamp(group.CreatedAt),
		}
		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		for _, username := range group.Members {
			username = strings.TrimSpace(username)
			if username == "" {
				continue
			}
			member := models.GroupMember{
				GroupID:  record.ID,
				Username: username,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}

		for _, hangout := range group.Hangouts {
			hangoutRecord := models.Hangout{
				ID:          hangout.ID,
				GroupID:     record.ID,
				Title:       hangout.Title,
				Date:        hangout.Date,
				Time:        hangout.Time,
				Location:    hangout.Location,
				Description: hangout.Description,
				ProposedBy:  hangout.ProposedBy,
				CreatedAt:   parseTimestamp(hangout.CreatedAt),
			}
			if hangoutRecord.ID == "" {
				hangoutRecord.ID = uuid.New().String()
			}
			if err := tx.Create(&hangoutRecord).Error; err != nil {
				return err
			}
			for username, status := range hangout.Responses {
				switch models.RSVPStatus(status) {
				case models.RSVPGoing, models.RSVPMaybe, models.RSVPNotGoing:
				default:
					continue
				}
				rsvp := models.HangoutRSVP{
					HangoutID: hangoutRecord.ID,
					Username:  username,
					Status:    models.RSVPStatus(status),
				}
				if err := tx.Create(&rsvp).Error; err != nil {
					return err
				}
			}
		}

		for _, message := range group.Messages {
			messageRecord := models.Message{
				ID:        message.ID,
				GroupID:   record.ID,
				Text:      message.Text,
				Sender:    message.Sender,
				CreatedAt: parseTimestamp(message.Timestamp),
			}
			if messageRecord.ID == "" {
				messageRecord.ID = uuid.New().String()
			}
			if err := tx.Create(&messageRecord).Error; err != nil {
				return err
			}
			for emoji, usernames := range message.Reactions {
				for _, username := range usernames {
					reaction := models.MessageReaction{
						MessageID: messageRecord.ID,
						Emoji:     emoji,
						Username:  username,
					}
					if err := tx.Create(&reaction).Error; err != nil {
						return err
					}
				}
			}
		}

		return nil
	})
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}
