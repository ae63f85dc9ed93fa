package store

import (
	"errors"
	"testing"

	"github.com/zulandar/slackbridge/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Workspace{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return New(db)
}

func acmeWorkspace() *models.Workspace {
	return &models.Workspace{
		AccessToken:    "xoxp-user",
		BotAccessToken: "xoxb-bot",
		TeamName:       "Acme",
		TeamID:         "T0001",
		UserID:         "U0001",
	}
}

func TestFindByTeamName(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert(acmeWorkspace()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ws, err := s.FindByTeamName("Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.TeamID != "T0001" || ws.BotAccessToken != "xoxb-bot" {
		t.Errorf("workspace = %+v, want team T0001 with bot token", ws)
	}
}

func TestFindByTeamName_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.FindByTeamName("Nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFindByTeamID_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.FindByTeamID("T9999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsert_ReplacesOnReinstall(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert(acmeWorkspace()); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	again := acmeWorkspace()
	again.AccessToken = "xoxp-user-2"
	again.BotAccessToken = "xoxb-bot-2"
	again.UserID = "U0002"
	if err := s.Upsert(again); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	ws, err := s.FindByTeamID("T0001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ws.BotAccessToken != "xoxb-bot-2" || ws.UserID != "U0002" {
		t.Errorf("workspace = %+v, want refreshed tokens and user", ws)
	}

	var count int64
	s.db.Model(&models.Workspace{}).Count(&count)
	if count != 1 {
		t.Errorf("row count = %d, want 1 (reinstall must not add a row)", count)
	}
}

func TestRenameTeam(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert(acmeWorkspace()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Repeating the same rename leaves the store in the same final state.
	for i := 0; i < 2; i++ {
		if err := s.RenameTeam("T0001", "Acme Corp"); err != nil {
			t.Fatalf("rename: %v", err)
		}
	}

	ws, err := s.FindByTeamID("T0001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ws.TeamName != "Acme Corp" {
		t.Errorf("TeamName = %q, want %q", ws.TeamName, "Acme Corp")
	}
}

func TestRenameTeam_NoMatchIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.RenameTeam("T9999", "Ghost"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDeleteByTeamAndUser(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert(acmeWorkspace()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := s.DeleteByTeamAndUser("T0001", "U0001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.FindByTeamID("T0001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestDeleteByTeamAndUser_WrongUserIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.Upsert(acmeWorkspace()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := s.DeleteByTeamAndUser("T0001", "U9999"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := s.FindByTeamID("T0001"); err != nil {
		t.Errorf("workspace should survive mismatched revoke: %v", err)
	}
}

func TestDeleteByTeamAndUser_MissingIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.DeleteByTeamAndUser("T9999", "U9999"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
