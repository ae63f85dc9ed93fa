// Package store provides lookups and mutations over workspace credentials.
package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/slackbridge/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no workspace matches a lookup.
var ErrNotFound = errors.New("store: workspace not found")

// Store wraps the credential table.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByTeamName returns the workspace with the given display name.
func (s *Store) FindByTeamName(name string) (*models.Workspace, error) {
	var w models.Workspace
	err := s.db.Where("team_name = ?", name).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find by team name %q: %w", name, err)
	}
	return &w, nil
}

// FindByTeamID returns the workspace with the given team ID.
func (s *Store) FindByTeamID(teamID string) (*models.Workspace, error) {
	var w models.Workspace
	err := s.db.Where("team_id = ?", teamID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find by team id %q: %w", teamID, err)
	}
	return &w, nil
}

// Upsert inserts a workspace, replacing the stored tokens, name and user
// when the team is already installed.
func (s *Store) Upsert(w *models.Workspace) error {
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "bot_access_token", "team_name", "user_id"}),
	}).Create(w)
	if result.Error != nil {
		return fmt.Errorf("store: upsert team %q: %w", w.TeamID, result.Error)
	}
	return nil
}

// RenameTeam updates the stored display name for a workspace. No-op when
// the team is not installed.
func (s *Store) RenameTeam(teamID, name string) error {
	result := s.db.Model(&models.Workspace{}).
		Where("team_id = ?", teamID).
		Update("team_name", name)
	if result.Error != nil {
		return fmt.Errorf("store: rename team %q: %w", teamID, result.Error)
	}
	return nil
}

// DeleteByTeamAndUser removes the credentials for a revoked installation.
// No-op when no matching row exists.
func (s *Store) DeleteByTeamAndUser(teamID, userID string) error {
	result := s.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.Workspace{})
	if result.Error != nil {
		return fmt.Errorf("store: delete team %q user %q: %w", teamID, userID, result.Error)
	}
	return nil
}
