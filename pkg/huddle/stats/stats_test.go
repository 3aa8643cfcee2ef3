package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huddleup/huddle/pkg/huddle/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func getStats(t *testing.T, router *gin.Engine) StatsResponse {
	req, _ := http.NewRequest("GET", "/api/stats", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var stats StatsResponse
	json.Unmarshal(resp.Body.Bytes(), &stats)
	return stats
}

func TestGetStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	stats := getStats(t, router)

	if stats.TotalUsers != 0 || stats.TotalGroups != 0 || stats.TotalHangouts != 0 ||
		stats.TotalMessages != 0 || stats.TotalReactions != 0 || stats.GoingResponses != 0 {
		t.Errorf("Expected all zeros, got %+v", stats)
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.User{ID: uuid.New().String(), Username: "alice"})
	db.Create(&models.User{ID: uuid.New().String(), Username: "bob"})

	group := models.Group{ID: uuid.New().String(), Name: "Friday Gamers", Code: "ABC-1234", CreatedBy: "alice"}
	db.Create(&group)
	db.Create(&models.GroupMember{GroupID: group.ID, Username: "alice"})
	db.Create(&models.GroupMember{GroupID: group.ID, Username: "bob"})

	hangout := models.Hangout{
		ID:         uuid.New().String(),
		GroupID:    group.ID,
		Title:      "Movie Night",
		Date:       "2026-03-14",
		Time:       "19:00",
		Location:   "The Commons",
		ProposedBy: "alice",
	}
	db.Create(&hangout)
	db.Create(&models.HangoutRSVP{HangoutID: hangout.ID, Username: "alice", Status: models.RSVPGoing})
	db.Create(&models.HangoutRSVP{HangoutID: hangout.ID, Username: "bob", Status: models.RSVPMaybe})

	message := models.Message{ID: uuid.New().String(), GroupID: group.ID, Text: "hi", Sender: "alice"}
	db.Create(&message)
	db.Create(&models.Message{ID: uuid.New().String(), GroupID: group.ID, Text: "hello", Sender: "bob"})
	db.Create(&models.MessageReaction{MessageID: message.ID, Emoji: "👍", Username: "bob"})

	stats := getStats(t, router)

	if stats.TotalUsers != 2 {
		t.Errorf("Expected 2 users, got %d", stats.TotalUsers)
	}
	if stats.TotalGroups != 1 {
		t.Errorf("Expected 1 group, got %d", stats.TotalGroups)
	}
	if stats.TotalHangouts != 1 {
		t.Errorf("Expected 1 hangout, got %d", stats.TotalHangouts)
	}
	if stats.TotalMessages != 2 {
		t.Errorf("Expected 2 messages, got %d", stats.TotalMessages)
	}
	if stats.TotalReactions != 1 {
		t.Errorf("Expected 1 reaction, got %d", stats.TotalReactions)
	}
	if stats.GoingResponses != 1 {
		t.Errorf("Expected 1 going response, got %d", stats.GoingResponses)
	}
}
