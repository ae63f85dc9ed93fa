package slackapi

import (
	"context"
	"errors"

	"github.com/slack-go/slack"
)

// client implements Client over slack-go with a workspace's bot token.
type client struct {
	api *slack.Client
}

// New creates a Client authenticated with the given bot token. A fresh
// client is built per request, mirroring the per-workspace tokens.
func New(botToken string) Client {
	return &client{api: slack.New(botToken)}
}

func (c *client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return apiErr(err)
	}
	return nil
}

// ListChannels returns the public and private channels visible to the bot.
// Only the first page is fetched; the bridge does not paginate.
func (c *client) ListChannels(ctx context.Context) ([]Channel, error) {
	channels, _, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
		Types: []string{"public_channel", "private_channel"},
	})
	if err != nil {
		return nil, apiErr(err)
	}
	out := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		out = append(out, Channel{ID: ch.ID, Name: ch.Name})
	}
	return out, nil
}

func (c *client) History(ctx context.Context, channelID, oldest, latest string) ([]Message, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    oldest,
		Latest:    latest,
	})
	if err != nil {
		return nil, apiErr(err)
	}
	return convertMessages(resp.Messages), nil
}

func (c *client) ThreadReplies(ctx context.Context, channelID, ts string) ([]Message, error) {
	msgs, _, _, err := c.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: ts,
	})
	if err != nil {
		return nil, apiErr(err)
	}
	return convertMessages(msgs), nil
}

// ResolveUser returns the platform username for a user ID.
func (c *client) ResolveUser(ctx context.Context, userID string) (string, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", apiErr(err)
	}
	return user.Name, nil
}

func convertMessages(msgs []slack.Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Message{
			UserID:          m.User,
			Text:            m.Text,
			Timestamp:       m.Timestamp,
			ThreadTimestamp: m.ThreadTimestamp,
		})
	}
	return out
}

// apiErr converts a slack-go error into an APIError. slack-go surfaces Web
// API failures either as a SlackErrorResponse or as a bare error whose
// message is the platform code string.
func apiErr(err error) error {
	var serr slack.SlackErrorResponse
	if errors.As(err, &serr) {
		return &APIError{Code: serr.Err}
	}
	return &APIError{Code: err.Error()}
}
