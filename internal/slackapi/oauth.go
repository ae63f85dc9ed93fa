package slackapi

import (
	"context"
	"net/http"

	"github.com/slack-go/slack"
)

// OAuth exchanges authorization codes via Slack's oauth.v2.access endpoint.
type OAuth struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewOAuth creates an OAuthExchanger for this app's client credentials.
func NewOAuth(clientID, clientSecret string) *OAuth {
	return &OAuth{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   http.DefaultClient,
	}
}

// Exchange trades an authorization code for workspace credentials.
func (o *OAuth) Exchange(ctx context.Context, code string) (*Grant, error) {
	resp, err := slack.GetOAuthV2ResponseContext(ctx, o.httpClient, o.clientID, o.clientSecret, code, "")
	if err != nil {
		return nil, apiErr(err)
	}
	return &Grant{
		AccessToken:    resp.AuthedUser.AccessToken,
		BotAccessToken: resp.AccessToken,
		TeamID:         resp.Team.ID,
		TeamName:       resp.Team.Name,
		UserID:         resp.AuthedUser.ID,
	}, nil
}
