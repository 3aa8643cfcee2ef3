package importexport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

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

func createTestUser(t *testing.T, db *gorm.DB, username string, createdAt time.Time) models.User {
	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: createdAt,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// seedWorld fills the database with one group's worth of everything.
func seedWorld(t *testing.T, db *gorm.DB) models.Group {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	createTestUser(t, db, "alice", base)
	createTestUser(t, db, "bob", base.Add(time.Hour))

	group := models.Group{
		ID:        uuid.New().String(),
		Name:      "Friday Gamers",
		Code:      "ABC-1234",
		CreatedBy: "alice",
		CreatedAt: base.Add(2 * time.Hour),
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	for _, username := range []string{"alice", "bob"} {
		db.Create(&models.GroupMember{GroupID: group.ID, Username: username})
	}

	hangout := models.Hangout{
		ID:         uuid.New().String(),
		GroupID:    group.ID,
		Title:      "Movie Night",
		Date:       "2026-03-14",
		Time:       "19:00",
		Location:   "The Commons",
		ProposedBy: "alice",
		CreatedAt:  base.Add(3 * time.Hour),
	}
	db.Create(&hangout)
	db.Create(&models.HangoutRSVP{HangoutID: hangout.ID, Username: "alice", Status: models.RSVPGoing})
	db.Create(&models.HangoutRSVP{HangoutID: hangout.ID, Username: "bob", Status: models.RSVPMaybe})

	message := models.Message{
		ID:        uuid.New().String(),
		GroupID:   group.ID,
		Text:      "see you there",
		Sender:    "alice",
		CreatedAt: base.Add(4 * time.Hour),
	}
	db.Create(&message)
	db.Create(&models.MessageReaction{MessageID: message.ID, Emoji: "👍", Username: "bob"})

	return group
}

func export(t *testing.T, router *gin.Engine) (Document, *httptest.ResponseRecorder) {
	req, _ := http.NewRequest("GET", "/api/export", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var doc Document
	json.Unmarshal(resp.Body.Bytes(), &doc)
	return doc, resp
}

func TestExport(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	seedWorld(t, db)

	doc, resp := export(t, router)

	if len(doc.Users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(doc.Users))
	}
	if len(doc.Groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(doc.Groups))
	}

	group := doc.Groups[0]
	if group.Code != "ABC-1234" {
		t.Errorf("Expected code ABC-1234, got %s", group.Code)
	}
	if !reflect.DeepEqual(group.Members, []string{"alice", "bob"}) {
		t.Errorf("Expected members [alice bob], got %v", group.Members)
	}

	if len(group.Hangouts) != 1 {
		t.Fatalf("Expected 1 hangout, got %d", len(group.Hangouts))
	}
	responses := group.Hangouts[0].Responses
	if responses["alice"] != "going" || responses["bob"] != "maybe" {
		t.Errorf("Expected alice going and bob maybe, got %v", responses)
	}

	if len(group.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(group.Messages))
	}
	reactions := group.Messages[0].Reactions
	if len(reactions["👍"]) != 1 || reactions["👍"][0] != "bob" {
		t.Errorf("Expected 👍 from bob, got %v", reactions)
	}

	// The document carries raw responses only; status is derived at read time
	if bytes.Contains(resp.Body.Bytes(), []byte(`"status"`)) {
		t.Error("Expected no status field in the export document")
	}

	if got := resp.Header().Get("Content-Disposition"); got != "" {
		t.Errorf("Expected no Content-Disposition header, got %s", got)
	}
}

func TestExportDownloadHeader(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/export?download=true", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	want := "attachment; filename=huddle-export.json"
	if got := resp.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestExportEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	_, resp := export(t, router)

	if !bytes.Contains(resp.Body.Bytes(), []byte(`"users":[]`)) {
		t.Errorf("Expected empty users array, got %s", resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte(`"groups":[]`)) {
		t.Errorf("Expected empty groups array, got %s", resp.Body.String())
	}
}

func TestImportCreatesEverything(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	doc := Document{
		Users: []ExportedUser{
			{Username: "carol", CreatedAt: "2026-01-05T08:00:00Z"},
		},
		Groups: []ExportedGroup{
			{
				Name:      "Book Club",
				Code:      "XYZ-7777",
				Members:   []string{"carol", "dave"},
				CreatedBy: "carol",
				CreatedAt: "2026-01-06T08:00:00Z",
				Hangouts: []ExportedHangout{
					{
						Title:      "First Chapter",
						Date:       "2026-02-01",
						Time:       "18:00",
						Location:   "Library",
						ProposedBy: "carol",
						CreatedAt:  "2026-01-07T08:00:00Z",
						Responses:  map[string]string{"carol": "going", "dave": "notGoing"},
					},
				},
				Messages: []ExportedMessage{
					{
						Text:      "bring snacks",
						Sender:    "dave",
						Timestamp: "2026-01-08T08:00:00Z",
						Reactions: map[string][]string{"🙌": {"carol"}},
					},
				},
			},
		},
	}
	jsonBody, _ := json.Marshal(doc)

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result ImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)

	if result.Imported.Users != 1 || result.Imported.Groups != 1 {
		t.Errorf("Expected 1 user and 1 group imported, got %+v", result.Imported)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", result.Errors)
	}

	var group models.Group
	if err := db.First(&group, "code = ?", "XYZ-7777").Error; err != nil {
		t.Fatalf("Expected imported group: %v", err)
	}

	var memberCount, hangoutCount, rsvpCount, messageCount, reactionCount int64
	db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&memberCount)
	db.Model(&models.Hangout{}).Where("group_id = ?", group.ID).Count(&hangoutCount)
	db.Model(&models.HangoutRSVP{}).Count(&rsvpCount)
	db.Model(&models.Message{}).Where("group_id = ?", group.ID).Count(&messageCount)
	db.Model(&models.MessageReaction{}).Count(&reactionCount)

	if memberCount != 2 || hangoutCount != 1 || rsvpCount != 2 || messageCount != 1 || reactionCount != 1 {
		t.Errorf("Expected full import, got members=%d hangouts=%d rsvps=%d messages=%d reactions=%d",
			memberCount, hangoutCount, rsvpCount, messageCount, reactionCount)
	}
}

func TestImportPreservesTimestamps(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	doc := Document{
		Users: []ExportedUser{
			{Username: "carol", CreatedAt: "2020-06-15T10:30:00Z"},
		},
	}
	jsonBody, _ := json.Marshal(doc)

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var user models.User
	db.First(&user, "username = ?", "carol")

	if user.CreatedAt.Year() != 2020 {
		t.Errorf("Expected year 2020, got %d", user.CreatedAt.Year())
	}
}

func TestImportSkipsExistingUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "Carol", time.Now())

	// Same name in a different casing counts as existing
	doc := Document{
		Users: []ExportedUser{
			{Username: "carol", CreatedAt: "2026-01-05T08:00:00Z"},
		},
	}
	jsonBody, _ := json.Marshal(doc)

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	var result ImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)

	if result.Skipped.Users != 1 || result.Imported.Users != 0 {
		t.Errorf("Expected 1 skipped user, got %+v", result)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user in database, got %d", count)
	}
}

func TestImportSkipsExistingGroupCode(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	seedWorld(t, db)

	doc := Document{
		Groups: []ExportedGroup{
			{
				Name:      "Impostor Group",
				Code:      "abc-1234",
				Members:   []string{"mallory"},
				CreatedBy: "mallory",
			},
		},
	}
	jsonBody, _ := json.Marshal(doc)

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	var result ImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)

	if result.Skipped.Groups != 1 || result.Imported.Groups != 0 {
		t.Errorf("Expected 1 skipped group, got %+v", result)
	}

	var count int64
	db.Model(&models.Group{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 group in database, got %d", count)
	}
}

func TestImportSkipsInvalidResponses(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	doc := Document{
		Groups: []ExportedGroup{
			{
				Name:      "Book Club",
				Code:      "XYZ-7777",
				Members:   []string{"carol"},
				CreatedBy: "carol",
				Hangouts: []ExportedHangout{
					{
						Title:      "First Chapter",
						Date:       "2026-02-01",
						Time:       "18:00",
						Location:   "Library",
						ProposedBy: "carol",
						Responses:  map[string]string{"carol": "definitely", "dave": "maybe"},
					},
				},
			},
		},
	}
	jsonBody, _ := json.Marshal(doc)

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.HangoutRSVP{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected only the valid response imported, got %d", count)
	}
}

func TestImportInvalidJSON(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	db1 := setupTestDB(t)
	router1 := setupTestRouter(db1)
	seedWorld(t, db1)

	original, _ := export(t, router1)

	// Import the document into a fresh database
	db2 := setupTestDB(t)
	router2 := setupTestRouter(db2)

	jsonBody, _ := json.Marshal(original)
	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router2.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	roundTripped, _ := export(t, router2)

	if !reflect.DeepEqual(original, roundTripped) {
		t.Errorf("Expected round-tripped document to match.\noriginal: %+v\nround-tripped: %+v", original, roundTripped)
	}
}
