package starterbot

import (
	"fmt"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestOAuthApp(c *Controller, exchange oauthExchanger) *OAuthApp {
	app := NewOAuthApp(c, config.AppCredentials{ClientID: "client-id", ClientSecret: "secret", Port: 3000}, []string{"bot", "users:read"})
	app.exchange = exchange

	return app
}

func successfulExchange(code string) (resp *slack.OAuthResponse, err error) {
	resp = &slack.OAuthResponse{TeamID: "T1", TeamName: "youppi", UserID: "U9"}
	resp.Bot.BotUserID = botID
	resp.Bot.BotAccessToken = "xoxb-" + code

	return resp, nil
}

func TestLoginRedirectsToSlack(t *testing.T) {
	c, _, cleanup := newTestController(t, nil)
	defer cleanup()

	rec := httptest.NewRecorder()
	newTestOAuthApp(c, successfulExchange).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "slack.com", location.Host)
	assert.Equal(t, "/oauth/authorize", location.Path)
	assert.Equal(t, "client-id", location.Query().Get("client_id"))
	assert.Equal(t, "bot,users:read", location.Query().Get("scope"))
}

func TestOAuthInstallsTeam(t *testing.T) {
	c, fc, cleanup := newTestController(t, nil)
	defer cleanup()

	handler := newTestOAuthApp(c, successfulExchange).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oauth?code=abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!\n", rec.Body.String())

	var team TeamRecord
	found, err := c.Teams.Get("T1", &team)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, TeamRecord{ID: "T1", Name: "youppi", BotUserID: botID, BotAccessToken: "xoxb-abc", CreatedBy: "U9"}, team)

	_, ok := c.Bot("T1")
	assert.True(t, ok)

	fs := fc.slack("xoxb-abc")
	assert.Equal(t, []string{installGreeting, installInvitation}, fs.Messages("DU9"))

	// Installing again doesn't greet the installer a second time
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oauth?code=abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, fs.Messages("DU9"), 2)
}

func TestOAuthFailures(t *testing.T) {
	tests := map[string]struct {
		target       string
		exchange     oauthExchanger
		expectedCode int
	}{
		"MissingCode": {
			target:       "/oauth",
			exchange:     successfulExchange,
			expectedCode: http.StatusBadRequest,
		},
		"AccessDenied": {
			target:       "/oauth?error=access_denied",
			exchange:     successfulExchange,
			expectedCode: http.StatusBadRequest,
		},
		"ExchangeFailure": {
			target: "/oauth?code=abc",
			exchange: func(code string) (*slack.OAuthResponse, error) {
				return nil, fmt.Errorf("invalid_code")
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, _, cleanup := newTestController(t, nil)
			defer cleanup()

			rec := httptest.NewRecorder()
			newTestOAuthApp(c, tc.exchange).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))

			assert.Equal(t, tc.expectedCode, rec.Code)

			_, ok := c.Bot("T1")
			assert.False(t, ok)
		})
	}
}
