package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/gorm"
)

// Handler handles user requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	User UserResponse `json:"user"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

func userToResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Login handles username-only login
// @Summary Log in
// @Description Log in with a bare username; unknown usernames are registered on the spot
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login details"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	// Usernames are matched case-insensitively; first login creates the user
	var user models.User
	err := h.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:       uuid.New().String(),
			Username: username,
		}
		if err := h.db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{User: userToResponse(user)})
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}
