package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

// eventEnvelope is the outer shape of an Events API delivery.
type eventEnvelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	TeamID    string          `json:"team_id"`
	Event     json.RawMessage `json:"event"`
}

// innerEvent covers the two event types the bridge reacts to: team_rename
// carries the new workspace name, tokens_revoked lists the revoked OAuth
// user tokens.
type innerEvent struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Tokens struct {
		OAuth []string `json:"oauth"`
		Bot   []string `json:"bot"`
	} `json:"tokens"`
}

// handleSlackEvent verifies and dispatches platform-pushed event
// deliveries. Unrecognized events are acknowledged and ignored.
func handleSlackEvent(opts Opts) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		sv, err := slack.NewSecretsVerifier(c.Request.Header, opts.SigningSecret)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		sv.Write(body)
		if err := sv.Ensure(); err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}

		var env eventEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		switch env.Type {
		case "url_verification":
			c.String(http.StatusOK, "%s", env.Challenge)

		case "event_callback":
			var ev innerEvent
			if err := json.Unmarshal(env.Event, &ev); err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			dispatchEvent(opts, env.TeamID, ev)
			c.Status(http.StatusOK)

		default:
			c.Status(http.StatusOK)
		}
	}
}

// dispatchEvent applies one store mutation per recognized event. Both
// handlers are no-ops when no credential row matches.
func dispatchEvent(opts Opts, teamID string, ev innerEvent) {
	switch ev.Type {
	case "team_rename":
		if err := opts.Store.RenameTeam(teamID, ev.Name); err != nil {
			log.Printf("server: team_rename %s: %v", teamID, err)
		}

	case "tokens_revoked":
		if len(ev.Tokens.OAuth) == 0 {
			return
		}
		if err := opts.Store.DeleteByTeamAndUser(teamID, ev.Tokens.OAuth[0]); err != nil {
			log.Printf("server: tokens_revoked %s: %v", teamID, err)
		}
	}
}
