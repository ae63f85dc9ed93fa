package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/zulandar/slackbridge/internal/models"
	"github.com/zulandar/slackbridge/internal/slackapi"
	"github.com/zulandar/slackbridge/internal/store"
)

// apiError is the JSON error shape returned on all structured failures.
type apiError struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var (
	errTeamNotFound    = apiError{Type: "not_found", Text: "Team not found"}
	errChannelNotFound = apiError{Type: "not_found", Text: "Channel not found"}
	errNotInChannel    = apiError{Type: "not_in_channel", Text: "The bot is not a member of the channel"}
)

// sendRequest is the body of POST /message/send.
type sendRequest struct {
	Team    string `json:"team"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// handleSendMessage posts a message to a channel on behalf of a workspace's
// bot.
func handleSendMessage(opts Opts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, apiError{Type: "bad_request", Text: "invalid JSON body"})
			return
		}

		ws, err := opts.Store.FindByTeamName(req.Team)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, errTeamNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, apiError{Type: "internal_error", Text: "credential lookup failed"})
			return
		}

		client := opts.NewClient(ws.BotAccessToken)
		if err := client.PostMessage(c.Request.Context(), req.Channel, req.Text); err != nil {
			switch errorCode(err) {
			case "channel_not_found":
				c.JSON(http.StatusBadRequest, errChannelNotFound)
			case "not_in_channel":
				c.JSON(http.StatusBadRequest, errNotInChannel)
			default:
				// Unrecognized platform codes surface instead of being
				// swallowed.
				c.JSON(http.StatusBadGateway, apiError{Type: "api_error", Text: errorCode(err)})
			}
			return
		}

		c.Status(http.StatusOK)
	}
}

// replyView is one thread reply in the GET /messages response.
type replyView struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
	Time   string `json:"time"`
}

// messageView is one top-level message in the GET /messages response.
type messageView struct {
	Text   string      `json:"text"`
	Sender string      `json:"sender"`
	Time   string      `json:"time"`
	Thread []replyView `json:"thread"`
}

// handleGetMessages fetches a channel's history, expands threads, and
// resolves sender IDs to usernames. One users.info call is made per message
// and per reply; the Client interface is the seam for a caching resolver.
func handleGetMessages(opts Opts) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		team := c.Query("team")
		channelName := c.Query("channel")
		from := c.Query("from")
		to := c.Query("to")

		ws, err := opts.Store.FindByTeamName(team)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, errTeamNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, apiError{Type: "internal_error", Text: "credential lookup failed"})
			return
		}

		client := opts.NewClient(ws.BotAccessToken)

		channels, err := client.ListChannels(ctx)
		if err != nil {
			c.JSON(http.StatusBadRequest, errNotInChannel)
			return
		}

		var channel *slackapi.Channel
		for i := range channels {
			if channels[i].Name == channelName {
				channel = &channels[i]
				break
			}
		}
		if channel == nil {
			c.JSON(http.StatusBadRequest, errChannelNotFound)
			return
		}

		history, err := client.History(ctx, channel.ID, from, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, errNotInChannel)
			return
		}

		response := make([]messageView, 0, len(history))
		for _, msg := range history {
			view := messageView{
				Text:   msg.Text,
				Time:   msg.Timestamp,
				Thread: []replyView{},
			}

			view.Sender, err = client.ResolveUser(ctx, msg.UserID)
			if err != nil {
				c.JSON(http.StatusBadGateway, apiError{Type: "api_error", Text: errorCode(err)})
				return
			}

			if msg.ThreadTimestamp != "" {
				replies, err := client.ThreadReplies(ctx, channel.ID, msg.ThreadTimestamp)
				if err != nil {
					c.JSON(http.StatusBadGateway, apiError{Type: "api_error", Text: errorCode(err)})
					return
				}
				// The first reply is the parent message, already projected.
				if len(replies) > 0 {
					replies = replies[1:]
				}
				for _, reply := range replies {
					sender, err := client.ResolveUser(ctx, reply.UserID)
					if err != nil {
						c.JSON(http.StatusBadGateway, apiError{Type: "api_error", Text: errorCode(err)})
						return
					}
					view.Thread = append(view.Thread, replyView{
						Text:   reply.Text,
						Sender: sender,
						Time:   reply.Timestamp,
					})
				}
			}

			response = append(response, view)
		}

		c.JSON(http.StatusOK, response)
	}
}

// handleEcho answers a slash command by posting "<user> said: <text>" back
// to the invoking channel. Failures never surface on the HTTP response;
// they are reported through the caller-supplied response_url instead.
func handleEcho(opts Opts) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		cmd, err := slack.SlashCommandParse(c.Request)
		if err != nil {
			log.Printf("server: echo: parse slash command: %v", err)
			c.Status(http.StatusOK)
			return
		}

		ws, err := opts.Store.FindByTeamID(cmd.TeamID)
		if err != nil {
			// The workspace was never installed (or the lookup failed);
			// there is no bot token to post with.
			log.Printf("server: echo: team %s: %v", cmd.TeamID, err)
			c.Status(http.StatusOK)
			return
		}

		client := opts.NewClient(ws.BotAccessToken)
		text := fmt.Sprintf("%s said: %s", cmd.UserName, cmd.Text)
		if err := client.PostMessage(ctx, cmd.ChannelID, text); err != nil {
			notifyErr := slack.PostWebhookContext(ctx, cmd.ResponseURL, &slack.WebhookMessage{
				ResponseType: "ephemeral",
				Text:         "The bot *is not* a member of the channel",
			})
			if notifyErr != nil {
				log.Printf("server: echo: response_url notify: %v", notifyErr)
			}
		}

		c.Status(http.StatusOK)
	}
}

// handleAuthorize completes the OAuth installation flow and stores the
// granted workspace credentials.
func handleAuthorize(opts Opts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("error") != "" {
			c.Redirect(http.StatusFound, fmt.Sprintf("https://slack.com/app_redirect?app=%s", opts.AppID))
			return
		}

		grant, err := opts.OAuth.Exchange(c.Request.Context(), c.Query("code"))
		if err != nil {
			c.JSON(http.StatusBadGateway, apiError{Type: "api_error", Text: errorCode(err)})
			return
		}

		ws := &models.Workspace{
			AccessToken:    grant.AccessToken,
			BotAccessToken: grant.BotAccessToken,
			TeamName:       grant.TeamName,
			TeamID:         grant.TeamID,
			UserID:         grant.UserID,
		}
		if err := opts.Store.Upsert(ws); err != nil {
			log.Printf("server: authorize: %v", err)
			c.JSON(http.StatusInternalServerError, apiError{Type: "internal_error", Text: "failed to save workspace credentials"})
			return
		}

		c.Redirect(http.StatusFound,
			fmt.Sprintf("https://slack.com/app_redirect?team=%s&app=%s", grant.TeamID, opts.AppID))
	}
}

// errorCode extracts the platform error code from an adapter error.
func errorCode(err error) string {
	var aerr *slackapi.APIError
	if errors.As(err, &aerr) {
		return aerr.Code
	}
	return err.Error()
}
