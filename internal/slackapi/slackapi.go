// Package slackapi wraps the outbound Slack Web API calls the bridge makes.
//
// Handlers depend on the narrow Client and OAuthExchanger interfaces so
// tests can substitute fakes; the production implementations delegate to
// slack-go.
package slackapi

import "context"

// APIError is a structured Slack API failure carrying the platform's error
// code string (e.g. "channel_not_found", "not_in_channel").
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return "slack: " + e.Code
}

// Channel identifies a conversation visible to the bot.
type Channel struct {
	ID   string
	Name string
}

// Message is one entry of a channel's history or a thread's replies.
// ThreadTimestamp is non-empty when the message anchors a thread.
type Message struct {
	UserID          string
	Text            string
	Timestamp       string
	ThreadTimestamp string
}

// Grant is the result of exchanging an OAuth authorization code.
type Grant struct {
	AccessToken    string // user-level token of the installing user
	BotAccessToken string // bot token used for all subsequent API calls
	TeamID         string
	TeamName       string
	UserID         string // installing user
}

// Client is the per-workspace Slack Web API surface used by the handlers.
type Client interface {
	PostMessage(ctx context.Context, channelID, text string) error
	ListChannels(ctx context.Context) ([]Channel, error)
	History(ctx context.Context, channelID, oldest, latest string) ([]Message, error)
	ThreadReplies(ctx context.Context, channelID, ts string) ([]Message, error)
	ResolveUser(ctx context.Context, userID string) (string, error)
}

// OAuthExchanger trades an authorization code for workspace credentials.
type OAuthExchanger interface {
	Exchange(ctx context.Context, code string) (*Grant, error)
}
