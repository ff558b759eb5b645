// starterbot runs a slack bot either as a custom integration (with a TOKEN) or as an
// OAuth app installable on many teams (with CLIENT_ID, CLIENT_SECRET and PORT).
package main

import (
	"context"
	"fmt"
	"github.com/alexandre-normand/starterbot"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/api/global"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	flagSet := pflag.NewFlagSet("starterbot", pflag.ContinueOnError)
	envFile := flagSet.String("env-file", ".env", "path to a file of environment variables to load")
	flagSet.Bool("debug", false, "enable debug logging")
	flagSet.String("responders", "", "path to a yaml file of canned responders")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 1
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	v := config.NewViperWithDefaults()
	if err := bindConfig(v, flagSet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	mode, err := config.ResolveMode(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	name := v.GetString(config.NameKey)
	meter := global.Meter(name)

	sb := starterbot.NewBuilder(name, v, starterbot.OptionMeter(meter)).
		WithStorerErr(starterbot.OpenStorer(name, v, meter)).
		WithEnrichment().
		WithStarterResponders()

	if respondersFile := v.GetString(config.RespondersFileKey); respondersFile != "" {
		sb = sb.WithRespondersErr(config.LoadResponders(respondersFile))
	}

	c, err := sb.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer c.Close()

	c.Logger().Printf("Starting as %s", mode)

	if mode == config.CustomIntegration {
		err = runCustomIntegration(c, config.Token(v))
	} else {
		err = runApp(c, v)
	}

	if err != nil {
		c.Logger().Printf("Terminated with error: %v", err)
		return 1
	}

	return 0
}

// bindConfig binds environment variables and command-line flags to their configuration keys
func bindConfig(v *viper.Viper, flagSet *pflag.FlagSet) (err error) {
	if err = config.BindEnv(v); err != nil {
		return err
	}

	if err = v.BindPFlag(config.DebugKey, flagSet.Lookup("debug")); err != nil {
		return err
	}

	return v.BindPFlag(config.RespondersFileKey, flagSet.Lookup("responders"))
}

// runCustomIntegration runs a single bot with a static token until a termination signal is received
func runCustomIntegration(c *starterbot.Controller, token string) (err error) {
	b, err := c.Spawn(token)
	if err != nil {
		return err
	}

	go func() {
		waitForTerminationSignal(c)
		b.Stop()
	}()

	return b.Run()
}

// runApp reconnects every saved team and serves the install flow until a termination signal is received
func runApp(c *starterbot.Controller, v *viper.Viper) (err error) {
	creds, err := config.GetAppCredentials(v)
	if err != nil {
		return err
	}

	count, err := c.ConnectTeams()
	if err != nil {
		return err
	}
	c.Logger().Printf("Reconnected [%d] teams", count)

	srv := starterbot.NewOAuthApp(c, creds, v.GetStringSlice(config.OAuthScopesKey)).Server()

	go func() {
		waitForTerminationSignal(c)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			c.Logger().Printf("Error shutting down server: %v", err)
		}
	}()

	c.Logger().Printf("Serving the install flow on [%s]", srv.Addr)
	if err = srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}

// waitForTerminationSignal blocks until a SIGINT or SIGTERM is received
func waitForTerminationSignal(c *starterbot.Controller) {
	tSignals := make(chan os.Signal, 1)
	signal.Notify(tSignals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-tSignals

	c.Logger().Printf("Received termination signal [%s], shutting down", sig)
}
