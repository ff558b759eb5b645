package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Mode is the way a starterbot instance authenticates with slack
type Mode int

const (
	// CustomIntegration is a single-workspace bot running with a static token
	CustomIntegration Mode = iota + 1
	// App is an OAuth app installable on many workspaces
	App
)

// ErrMissingConfiguration is returned when neither a custom integration nor an app is configured
var ErrMissingConfiguration = errors.New("If this is a custom integration, please specify TOKEN in the environment. If this is an app, please specify CLIENT_ID, CLIENT_SECRET and PORT in the environment")

// AppCredentials holds the configuration of an OAuth app
type AppCredentials struct {
	ClientID     string
	ClientSecret string
	Port         int
}

// String returns a friendly name for the mode
func (m Mode) String() string {
	switch m {
	case CustomIntegration:
		return "custom integration"
	case App:
		return "app"
	default:
		return "unknown"
	}
}

// Token returns the static token of a custom integration. The token key takes precedence
// over the slack token key. An empty string means no static token is configured
func Token(v *viper.Viper) string {
	if t := v.GetString(TokenKey); t != "" {
		return t
	}

	return v.GetString(SlackTokenKey)
}

// GetAppCredentials returns the OAuth app credentials or ErrMissingConfiguration if any of them
// is missing or if the port isn't a valid integer
func GetAppCredentials(v *viper.Viper) (creds AppCredentials, err error) {
	creds.ClientID = v.GetString(ClientIDKey)
	creds.ClientSecret = v.GetString(ClientSecretKey)
	rawPort := v.GetString(PortKey)

	if creds.ClientID == "" || creds.ClientSecret == "" || rawPort == "" {
		return AppCredentials{}, ErrMissingConfiguration
	}

	creds.Port, err = cast.ToIntE(rawPort)
	if err != nil || creds.Port <= 0 {
		return AppCredentials{}, errors.Wrapf(ErrMissingConfiguration, "invalid port [%s]", rawPort)
	}

	return creds, nil
}

// ResolveMode returns the mode the instance should run in. A static token means a custom integration,
// a complete set of app credentials means an app and anything else is ErrMissingConfiguration
func ResolveMode(v *viper.Viper) (mode Mode, err error) {
	if Token(v) != "" {
		return CustomIntegration, nil
	}

	if _, err = GetAppCredentials(v); err != nil {
		return 0, err
	}

	return App, nil
}
