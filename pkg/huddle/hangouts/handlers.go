package hangouts

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Handler handles hangout requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new hangouts handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ProposeHangoutRequest represents the request to propose a hangout
type ProposeHangoutRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ProposedBy  string `json:"proposedBy"`
}

// RespondRequest represents an attendance response to a hangout
type RespondRequest struct {
	Username string `json:"username"`
	Response string `json:"response"`
}

// DeleteHangoutRequest identifies who is asking to delete a hangout
type DeleteHangoutRequest struct {
	Username string `json:"username"`
}

func validResponse(response string) bool {
	switch models.RSVPStatus(response) {
	case models.RSVPGoing, models.RSVPMaybe, models.RSVPNotGoing:
		return true
	}
	return false
}

// countMembers returns the group's current member count
func (h *Handler) countMembers(groupID string) int {
	var count int64
	h.db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&count)
	return int(count)
}

func (h *Handler) renderHangout(hangout models.Hangout) (HangoutResponse, error) {
	var rsvps []models.HangoutRSVP
	if err := h.db.Where("hangout_id = ?", hangout.ID).Order("id").Find(&rsvps).Error; err != nil {
		return HangoutResponse{}, err
	}
	return hangoutToResponse(hangout, rsvps, h.countMembers(hangout.GroupID)), nil
}

// Propose creates a new hangout in a group
// @Summary Propose a hangout
// @Description Propose a hangout in a group; the proposer is recorded as going
// @Tags hangouts
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body ProposeHangoutRequest true "Hangout details"
// @Success 201 {object} map[string]interface{} "New hangout and the group's full hangout list"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{id}/hangouts [post]
func (h *Handler) Propose(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var req ProposeHangoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(req.Title)
	date := strings.TrimSpace(req.Date)
	timeOfDay := strings.TrimSpace(req.Time)
	location := strings.TrimSpace(req.Location)
	proposedBy := strings.TrimSpace(req.ProposedBy)

	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}
	if timeOfDay == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time is required"})
		return
	}
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location is required"})
		return
	}
	if proposedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proposer username is required"})
		return
	}

	hangout := models.Hangout{
		ID:          uuid.New().String(),
		GroupID:     group.ID,
		Title:       title,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
		Description: strings.TrimSpace(req.Description),
		ProposedBy:  proposedBy,
	}

	// Create the hangout and the proposer's going response in a transaction
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hangout).Error; err != nil {
			return err
		}
		rsvp := models.HangoutRSVP{
			HangoutID: hangout.ID,
			Username:  proposedBy,
			Status:    models.RSVPGoing,
		}
		return tx.Create(&rsvp).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to propose hangout"})
		return
	}

	view, err := h.renderHangout(hangout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hangout"})
		return
	}
	list, err := ListForGroup(h.db, group.ID, h.countMembers(group.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hangouts"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"hangout": view, "hangouts": list})
}

// Respond records a member's attendance response
// @Summary Respond to a hangout
// @Description Record going/maybe/notGoing for a hangout, overwriting any prior response
// @Tags hangouts
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param hangoutId path string true "Hangout ID"
// @Param request body RespondRequest true "Attendance response"
// @Success 200 {object} map[string]interface{} "Updated hangout"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Group or hangout not found"
// @Router /groups/{id}/hangouts/{hangoutId}/respond [post]
func (h *Handler) Respond(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var hangout models.Hangout
	if err := h.db.Where("id = ? AND group_id = ?", c.Param("hangoutId"), group.ID).First(&hangout).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hangout not found"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}
	if !validResponse(req.Response) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Response must be going, maybe or notGoing"})
		return
	}
	status := models.RSVPStatus(req.Response)

	// Overwrite any prior response from this username, matched
	// case-insensitively so "Bob" and "bob" stay one entry
	var existing models.HangoutRSVP
	err := h.db.Where("hangout_id = ? AND LOWER(username) = LOWER(?)", hangout.ID, username).First(&existing).Error
	if err == nil {
		existing.Status = status
		if err := h.db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record response"})
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		rsvp := models.HangoutRSVP{
			HangoutID: hangout.ID,
			Username:  username,
			Status:    status,
		}
		if err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hangout_id"}, {Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).Create(&rsvp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record response"})
			return
		}
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record response"})
		return
	}

	view, err := h.renderHangout(hangout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hangout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hangout": view})
}

// Delete removes a hangout, proposer only
// @Summary Delete a hangout
// @Description Delete a hangout and its responses; only the proposer may do this
// @Tags hangouts
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param hangoutId path string true "Hangout ID"
// @Param request body DeleteHangoutRequest true "Requesting username"
// @Success 200 {object} map[string]bool "Deletion confirmation"
// @Failure 403 {object} map[string]string "Only the proposer may delete"
// @Failure 404 {object} map[string]string "Group or hangout not found"
// @Router /groups/{id}/hangouts/{hangoutId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var hangout models.Hangout
	if err := h.db.Where("id = ? AND group_id = ?", c.Param("hangoutId"), group.ID).First(&hangout).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hangout not found"})
		return
	}

	var req DeleteHangoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}
	if !strings.EqualFold(hangout.ProposedBy, username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the proposer can delete a hangout"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hangout_id = ?", hangout.ID).Delete(&models.HangoutRSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&hangout).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hangout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRoutes registers hangout routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/groups/:id/hangouts", h.Propose)
	rg.POST("/groups/:id/hangouts/:hangoutId/respond", h.Respond)
	rg.DELETE("/groups/:id/hangouts/:hangoutId", h.Delete)
}
