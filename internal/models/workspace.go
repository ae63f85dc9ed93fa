// Package models defines the GORM models persisted by the bridge.
package models

import "time"

// Workspace holds the OAuth credentials for one installed Slack workspace.
// TeamID is unique: lookups assume a single row per workspace, and a repeat
// installation replaces the stored tokens instead of adding a row.
type Workspace struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	AccessToken    string `gorm:"size:255;not null;uniqueIndex"`
	BotAccessToken string `gorm:"size:255;not null;uniqueIndex"`
	TeamName       string `gorm:"size:255;not null;index"`
	TeamID         string `gorm:"size:32;not null;uniqueIndex"`
	UserID         string `gorm:"size:32;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
