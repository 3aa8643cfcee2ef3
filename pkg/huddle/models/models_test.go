package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	err := AutoMigrate(db)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	// Verify tables exist by checking if we can query them
	tables := []string{"users", "groups", "group_members", "hangouts", "hangout_rsvps", "messages", "message_reactions"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestUsernameUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{
		ID:       "user-1",
		Username: "alice",
	}
	result := db.Create(&user)
	if result.Error != nil {
		t.Fatalf("Failed to create user: %v", result.Error)
	}

	user2 := User{
		ID:       "user-2",
		Username: "alice",
	}
	result = db.Create(&user2)
	if result.Error == nil {
		t.Error("Expected error when creating user with duplicate username")
	}
}

func TestGroupCodeUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	group := Group{ID: "group-1", Name: "Friday Gamers", Code: "ABC-1234", CreatedBy: "alice"}
	db.Create(&group)

	group2 := Group{ID: "group-2", Name: "Other Crew", Code: "ABC-1234", CreatedBy: "bob"}
	result := db.Create(&group2)
	if result.Error == nil {
		t.Error("Expected error when creating group with duplicate code")
	}
}

func TestGroupMemberUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	group := Group{ID: "group-1", Name: "Friday Gamers", Code: "ABC-1234", CreatedBy: "alice"}
	db.Create(&group)

	member := GroupMember{GroupID: group.ID, Username: "alice"}
	result := db.Create(&member)
	if result.Error != nil {
		t.Fatalf("Failed to create membership: %v", result.Error)
	}

	duplicate := GroupMember{GroupID: group.ID, Username: "alice"}
	result = db.Create(&duplicate)
	if result.Error == nil {
		t.Error("Expected error when creating duplicate membership")
	}

	// Same username in a different group is fine
	other := Group{ID: "group-2", Name: "Book Club", Code: "XYZ-9999", CreatedBy: "alice"}
	db.Create(&other)
	result = db.Create(&GroupMember{GroupID: other.ID, Username: "alice"})
	if result.Error != nil {
		t.Errorf("Expected membership in a second group to succeed: %v", result.Error)
	}
}

func TestHangoutRSVPUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	hangout := Hangout{
		ID:         "hangout-1",
		GroupID:    "group-1",
		Title:      "Movie Night",
		Date:       "2025-03-01",
		Time:       "19:00",
		Location:   "Cinema",
		ProposedBy: "alice",
	}
	db.Create(&hangout)

	rsvp := HangoutRSVP{HangoutID: hangout.ID, Username: "alice", Status: RSVPGoing}
	result := db.Create(&rsvp)
	if result.Error != nil {
		t.Fatalf("Failed to create RSVP: %v", result.Error)
	}

	duplicate := HangoutRSVP{HangoutID: hangout.ID, Username: "alice", Status: RSVPMaybe}
	result = db.Create(&duplicate)
	if result.Error == nil {
		t.Error("Expected error when creating second RSVP for the same username")
	}
}

func TestMessageReactionUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	message := Message{ID: "message-1", GroupID: "group-1", Text: "hi", Sender: "alice"}
	db.Create(&message)

	reaction := MessageReaction{MessageID: message.ID, Emoji: "👍", Username: "bob"}
	result := db.Create(&reaction)
	if result.Error != nil {
		t.Fatalf("Failed to create reaction: %v", result.Error)
	}

	duplicate := MessageReaction{MessageID: message.ID, Emoji: "👍", Username: "bob"}
	result = db.Create(&duplicate)
	if result.Error == nil {
		t.Error("Expected error when creating duplicate reaction")
	}

	// Same emoji from a different username is fine
	result = db.Create(&MessageReaction{MessageID: message.ID, Emoji: "👍", Username: "carol"})
	if result.Error != nil {
		t.Errorf("Expected reaction from a second username to succeed: %v", result.Error)
	}
}
