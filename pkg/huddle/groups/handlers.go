package groups

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles group requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
}

// GroupPreviewResponse represents the public preview of a group looked up by code
type GroupPreviewResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	MemberCount int    `json:"memberCount"`
}

// List returns all groups a username is a member of
// @Summary List groups
// @Description Get all groups the given username is a member of
// @Tags groups
// @Produce json
// @Param username query string true "Username to filter by"
// @Success 200 {object} map[string]interface{} "Group list"
// @Failure 400 {object} map[string]string "Validation error"
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	var memberships []models.GroupMember
	if err := h.db.Where("LOWER(username) = LOWER(?)", username).Order("id").Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	groupViews := make([]GroupResponse, 0, len(memberships))
	for _, membership := range memberships {
		var group models.Group
		if err := h.db.First(&group, "id = ?", membership.GroupID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}
		view, err := groupToResponse(h.db, group)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
			return
		}
		groupViews = append(groupViews, view)
	}

	c.JSON(http.StatusOK, gin.H{"groups": groupViews})
}

// Create creates a new group with the creator as sole member
// @Summary Create a group
// @Description Create a group with a fresh share code and the creator as sole member
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} map[string]interface{} "New group"
// @Failure 400 {object} map[string]string "Validation error"
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	createdBy := strings.TrimSpace(req.CreatedBy)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}
	if createdBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Creator username is required"})
		return
	}

	code, err := h.generateCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate share code"})
		return
	}

	group := models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		CreatedBy: createdBy,
	}

	// Create group and founding membership in a transaction
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID:  group.ID,
			Username: createdBy,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	view, err := groupToResponse(h.db, group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": view})
}

// Get returns a specific group with its full document view
// @Summary Get a group
// @Description Get a group by id, with members, hangouts and messages
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} map[string]interface{} "Group"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	var group models.Group
	if err := h.db.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	view, err := groupToResponse(h.db, group)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": view})
}

// Preview returns the public preview of a group by share code
// @Summary Preview a group by code
// @Description Look up a group's name and member count by share code, for invite links
// @Tags groups
// @Produce json
// @Param code path string true "Share code"
// @Success 200 {object} map[string]interface{} "Group preview"
// @Failure 404 {object} map[string]string "No group for that code"
// @Router /groups/code/{code} [get]
func (h *Handler) Preview(c *gin.Context) {
	group, err := h.findByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No group found for that code"})
		return
	}

	var memberCount int64
	h.db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&memberCount)

	c.JSON(http.StatusOK, gin.H{"group": GroupPreviewResponse{
		ID:          group.ID,
		Name:        group.Name,
		Code:        group.Code,
		MemberCount: int(memberCount),
	}})
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/join", h.Join)
	rg.GET("/code/:code", h.Preview)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/leave", h.Leave)
}
