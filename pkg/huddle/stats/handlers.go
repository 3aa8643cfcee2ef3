package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles instance statistics requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new stats handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// StatsResponse represents instance-wide statistics
type StatsResponse struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalGroups    int64 `json:"totalGroups"`
	TotalHangouts  int64 `json:"totalHangouts"`
	TotalMessages  int64 `json:"totalMessages"`
	TotalReactions int64 `json:"totalReactions"`
	GoingResponses int64 `json:"goingResponses"`
}

// Get returns instance-wide statistics
func (h *Handler) Get(c *gin.Context) {
	var stats StatsResponse

	h.db.Model(&models.User{}).Count(&stats.TotalUsers)
	h.db.Model(&models.Group{}).Count(&stats.TotalGroups)
	h.db.Model(&models.Hangout{}).Count(&stats.TotalHangouts)
	h.db.Model(&models.Message{}).Count(&stats.TotalMessages)
	h.db.Model(&models.MessageReaction{}).Count(&stats.TotalReactions)
	h.db.Model(&models.HangoutRSVP{}).Where("status = ?", models.RSVPGoing).Count(&stats.GoingResponses)

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers stats routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Get)
}
