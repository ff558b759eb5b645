package starterbot

import (
	"fmt"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"net/http"
	"net/url"
	"strings"
)

const slackAuthorizeURL = "https://slack.com/oauth/authorize"

// oauthExchanger exchanges a temporary oauth code for an access token
type oauthExchanger func(code string) (resp *slack.OAuthResponse, err error)

// OAuthApp serves the install flow of the app: /login sends users to slack to authorize the app and
// /oauth receives them back, saves their team and connects a bot to it
type OAuthApp struct {
	controller *Controller
	creds      config.AppCredentials
	scopes     []string
	exchange   oauthExchanger
	log        SLogger
}

// NewOAuthApp returns a new OAuthApp installing bots with the controller
func NewOAuthApp(c *Controller, creds config.AppCredentials, scopes []string) (app *OAuthApp) {
	app = new(OAuthApp)
	app.controller = c
	app.creds = creds
	app.scopes = scopes
	app.log = c.log
	app.exchange = func(code string) (*slack.OAuthResponse, error) {
		return slack.GetOAuthResponse(http.DefaultClient, creds.ClientID, creds.ClientSecret, code, "")
	}

	return app
}

// Handler returns the http handler serving the install flow
func (app *OAuthApp) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", app.login)
	mux.HandleFunc("/oauth", app.oauth)

	return mux
}

// Server returns an http server for the install flow listening on the app's port
func (app *OAuthApp) Server() *http.Server {
	return &http.Server{Addr: fmt.Sprintf(":%d", app.creds.Port), Handler: app.Handler()}
}

// authorizeURL returns the slack url where users authorize the app
func (app *OAuthApp) authorizeURL() string {
	params := url.Values{}
	params.Set("client_id", app.creds.ClientID)
	params.Set("scope", strings.Join(app.scopes, ","))

	return slackAuthorizeURL + "?" + params.Encode()
}

func (app *OAuthApp) login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, app.authorizeURL(), http.StatusFound)
}

func (app *OAuthApp) oauth(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if e := query.Get("error"); e != "" {
		http.Error(w, fmt.Sprintf("Installation failed: %s", e), http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "Missing code", http.StatusBadRequest)
		return
	}

	if err := app.install(code); err != nil {
		app.log.Printf("Error installing app: %v", err)
		http.Error(w, "Installation failed", http.StatusInternalServerError)
		return
	}

	fmt.Fprintln(w, "Success!")
}

// install exchanges the code for the team's tokens, saves the team and connects a bot to it. The installer
// is greeted when the team wasn't already connected
func (app *OAuthApp) install(code string) (err error) {
	resp, err := app.exchange(code)
	if err != nil {
		return errors.Wrap(err, "oauth exchange failed")
	}

	team := TeamRecord{ID: resp.TeamID, Name: resp.TeamName, BotUserID: resp.Bot.BotUserID, BotAccessToken: resp.Bot.BotAccessToken, CreatedBy: resp.UserID}
	if err = app.controller.Teams.Save(team.ID, team); err != nil {
		return err
	}

	b, connected, err := app.controller.ConnectTeam(team)
	if err != nil {
		return err
	}

	if !connected {
		app.log.Debugf("Team [%s] (%s) was already connected", team.Name, team.ID)
		return nil
	}

	app.log.Printf("Connected new team [%s] (%s) installed by [%s]", team.Name, team.ID, team.CreatedBy)
	if err = b.GreetInstaller(team.CreatedBy); err != nil {
		app.log.Printf("Error greeting installer [%s] of team [%s]: %v", team.CreatedBy, team.ID, err)
	}

	return nil
}
