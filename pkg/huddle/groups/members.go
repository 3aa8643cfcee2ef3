package groups

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// JoinGroupRequest represents the request to join a group by share code
type JoinGroupRequest struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

// LeaveGroupRequest represents the request to leave a group
type LeaveGroupRequest struct {
	Username string `json:"username"`
}

// findByCode looks up a group by share code, case-insensitively
func (h *Handler) findByCode(code string) (models.Group, error) {
	var group models.Group
	err := h.db.Where("UPPER(code) = UPPER(?)", strings.TrimSpace(code)).First(&group).Error
	return group, err
}

// Join adds a username to the group carrying the given share code
// @Summary Join a group
// @Description Join a group by share code
// @Tags groups
// @Accept json
// @Produce json
// @Param request body JoinGroupRequest true "Share code and username"
// @Success 200 {object} map[string]interface{} "Joined group"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "No group for that code"
// @Failure 409 {object} map[string]string "Already a member"
// @Router /groups/join [post]
func (h *Handler) Join(c *gin.Context) {
	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.TrimSpace(req.Code)
	username := strings.TrimSpace(req.Username)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Share code is required"})
		return
	}
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	group, err := h.findByCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No group found for that code"})
		return
	}

	// Check if already a member
	var existing models.GroupMember
	if err := h.db.Where("group_id = ? AND LOWER(username) = LOWER(?)", group.ID, username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this group"})
		return
	}

	member := models.GroupMember{
		GroupID:  group.ID,
		Username: username,
	}
	if err := h.db.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	view, err := groupToResponse(h.db, group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": view})
}

// Leave removes a username from a group, deleting the group when the
// member list empties
// @Summary Leave a group
// @Description Leave a group; the last member leaving deletes the group entirely
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body LeaveGroupRequest true "Username leaving"
// @Success 200 {object} map[string]bool "Whether the group was deleted"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{id}/leave [post]
func (h *Handler) Leave(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var req LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	deleted := false
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ? AND LOWER(username) = LOWER(?)", group.ID, username).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		deleted = true
		return deleteGroupCascade(tx, group.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// deleteGroupCascade removes a group and every nested record it owns
func deleteGroupCascade(tx *gorm.DB, groupID string) error {
	var hangoutIDs []string
	if err := tx.Model(&models.Hangout{}).Where("group_id = ?", groupID).Pluck("id", &hangoutIDs).Error; err != nil {
		return err
	}
	if len(hangoutIDs) > 0 {
		if err := tx.Where("hangout_id IN ?", hangoutIDs).Delete(&models.HangoutRSVP{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("group_id = ?", groupID).Delete(&models.Hangout{}).Error; err != nil {
		return err
	}

	var messageIDs []string
	if err := tx.Model(&models.Message{}).Where("group_id = ?", groupID).Pluck("id", &messageIDs).Error; err != nil {
		return err
	}
	if len(messageIDs) > 0 {
		if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.MessageReaction{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("group_id = ?", groupID).Delete(&models.Message{}).Error; err != nil {
		return err
	}

	if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Group{ID: groupID}).Error
}
