package starterbot

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/api/metric"
	"io"
	"log"
	"os"
	"regexp"
	"sync"
)

// Handler is what gets executed when an event it's registered for is dispatched
type Handler func(b *Bot, e *Event)

// ReceiveMiddleware runs on every inbound event before any handler. It must eventually call next
// for the event to continue to the next middleware and, after the last one, to the handlers
type ReceiveMiddleware func(b *Bot, e *Event, next func())

// hearer is a handler triggered by messages matching any of its patterns
type hearer struct {
	patterns   []*regexp.Regexp
	eventTypes map[string]bool
	handler    Handler
}

// TeamRecord is what is kept about a team that installed the app
type TeamRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BotUserID      string `json:"bot_user_id"`
	BotAccessToken string `json:"bot_access_token"`
	CreatedBy      string `json:"created_by"`
}

// Controller owns everything shared by the bots: storage, receive middleware, handlers, logging
// and instrumentation
type Controller struct {
	name   string
	config *viper.Viper

	storer store.SiloStringStorer

	// Users holds the cached slack users
	Users *store.Collection
	// Channels holds the cached slack conversations
	Channels *store.Collection
	// Teams holds the teams that installed the app
	Teams *store.Collection

	middlewares []ReceiveMiddleware
	handlers    map[string][]Handler
	hearers     []hearer

	log   *sLogger
	meter metric.Meter
	*instrumenter

	closers []io.Closer
	connect connector

	botsMu  sync.Mutex
	bots    map[string]*Bot
	running sync.WaitGroup
}

// Option defines an option for a Controller
type Option func(*Controller)

// OptionLog sets a logger for the controller and its bots
func OptionLog(logger *log.Logger) func(*Controller) {
	return func(c *Controller) {
		c.log.logger = logger
	}
}

// OptionLogfile sets a logfile for the controller and its bots. The log lines keep the default prefix and flags
func OptionLogfile(logfile *os.File) func(*Controller) {
	return func(c *Controller) {
		c.log.logger = newDefaultLogger(logfile, c.name)
	}
}

// OptionMeter sets the open telemetry meter used to instrument the controller and its bots. The default
// meter records nothing
func OptionMeter(meter metric.Meter) func(*Controller) {
	return func(c *Controller) {
		c.meter = meter
	}
}

// optionConnector replaces the way bots connect to slack
func optionConnector(connect connector) func(*Controller) {
	return func(c *Controller) {
		c.connect = connect
	}
}

// New creates a new Controller. Storage must be set with SetStorer before bots are spawned
func New(name string, v *viper.Viper, options ...Option) (c *Controller) {
	c = new(Controller)
	c.name = name
	c.config = v
	c.handlers = make(map[string][]Handler)
	c.bots = make(map[string]*Bot)
	c.log = NewSLogger(newDefaultLogger(os.Stdout, name), v.GetBool(config.DebugKey))
	c.connect = c.rtmConnect

	for _, opt := range options {
		opt(c)
	}

	c.instrumenter = newInstrumenter(name, c.meter)

	return c
}

// SetStorer sets the storage of the controller. The storer is closed along with the controller
func (c *Controller) SetStorer(storer store.SiloStringStorer) {
	c.storer = storer
	c.Users = store.NewCollection(store.UsersSilo, storer)
	c.Channels = store.NewCollection(store.ChannelsSilo, storer)
	c.Teams = store.NewCollection(store.TeamsSilo, storer)
	c.closers = append(c.closers, storer)
}

// Logger returns the controller's logger
func (c *Controller) Logger() SLogger {
	return c.log
}

// Use registers a receive middleware. Middleware runs in registration order. Registration must
// happen before any bot runs
func (c *Controller) Use(mw ReceiveMiddleware) {
	c.middlewares = append(c.middlewares, mw)
}

// On registers a handler for one or more event types. Registration must happen before any bot runs
func (c *Controller) On(eventTypes []string, h Handler) {
	for _, t := range eventTypes {
		c.handlers[t] = append(c.handlers[t], h)
	}
}

// Hears registers a handler for messages of the given types matching any of the patterns. Patterns are
// regular expressions matched case-insensitively. Hears handlers are tried in registration order and only
// the first one matching a message is executed. Registration must happen before any bot runs
func (c *Controller) Hears(patterns []string, eventTypes []string, h Handler) (err error) {
	hr := hearer{eventTypes: make(map[string]bool), handler: h}

	for _, t := range eventTypes {
		if !messageEventTypes[t] {
			return fmt.Errorf("Can't hear [%s] events, only message events (ambient, mention, direct_mention, direct_message) can be heard", t)
		}

		hr.eventTypes[t] = true
	}

	for _, p := range patterns {
		r, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return errors.Wrapf(err, "invalid pattern [%s]", p)
		}

		hr.patterns = append(hr.patterns, r)
	}

	c.hearers = append(c.hearers, hr)
	return nil
}

// receive runs an event through the middleware chain and then dispatches it to handlers
func (c *Controller) receive(b *Bot, e *Event) {
	c.coreMetrics.eventsSeen.Add(context.Background(), 1)

	d := measure(func() {
		c.runMiddleware(0, b, e)
	})

	c.coreMetrics.eventProcessingLatencyMillis.Record(context.Background(), d.Milliseconds())
}

// runMiddleware runs the middleware at index i with a next that continues the chain at most once
func (c *Controller) runMiddleware(i int, b *Bot, e *Event) {
	if i == len(c.middlewares) {
		c.dispatch(b, e)
		return
	}

	var once sync.Once
	c.middlewares[i](b, e, func() {
		once.Do(func() {
			c.runMiddleware(i+1, b, e)
		})
	})
}

// dispatch executes the first matching hears handler for message events. Events of other types, and
// messages no hears handler matched, go to the handlers registered with On
func (c *Controller) dispatch(b *Bot, e *Event) {
	c.coreMetrics.eventsDispatched.Add(context.Background(), 1)

	if messageEventTypes[e.Type] {
		for _, hr := range c.hearers {
			if !hr.eventTypes[e.Type] {
				continue
			}

			for _, p := range hr.patterns {
				if m := p.FindStringSubmatch(e.Text); m != nil {
					c.log.Debugf("Message [%s] matched [%s]", e.Text, p)
					e.Match = m
					hr.handler(b, e)
					return
				}
			}
		}
	}

	c.trigger(b, e)
}

// trigger executes all handlers registered for the event type, bypassing middleware
func (c *Controller) trigger(b *Bot, e *Event) {
	for _, h := range c.handlers[e.Type] {
		h(b, e)
	}
}

// rtmConnect is the default connector, opening a realtime connection with slack
func (c *Controller) rtmConnect(token string) (api slackAPI, conn rtmConnection, events <-chan slack.RTMEvent) {
	client := slack.New(
		token,
		slack.OptionDebug(c.config.GetBool(config.DebugKey)),
		slack.OptionLog(log.New(os.Stdout, "slack: ", log.Lshortfile|log.LstdFlags)),
	)

	rtm := client.NewRTM()
	return client, rtm, rtm.IncomingEvents
}

// Spawn creates a new Bot connecting with token. The bot starts processing events when Run is called
func (c *Controller) Spawn(token string) (b *Bot, err error) {
	if c.storer == nil {
		return nil, fmt.Errorf("Storage must be set before spawning bots")
	}

	api, conn, events := c.connect(token)
	return newBot(c, api, conn, events)
}

// ConnectTeam spawns and runs a bot for a team unless one is already connected for it. connected is false when
// the team already had a running bot, in which case that bot is returned
func (c *Controller) ConnectTeam(team TeamRecord) (b *Bot, connected bool, err error) {
	c.botsMu.Lock()
	defer c.botsMu.Unlock()

	if existing, ok := c.bots[team.ID]; ok {
		return existing, false, nil
	}

	b, err = c.Spawn(team.BotAccessToken)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to connect team [%s]", team.ID)
	}

	b.teamID = team.ID
	c.bots[team.ID] = b

	c.running.Add(1)
	go func() {
		defer c.running.Done()

		if err := b.Run(); err != nil {
			c.log.Printf("Bot for team [%s] (%s) terminated: %v", team.Name, team.ID, err)
		}

		c.botsMu.Lock()
		defer c.botsMu.Unlock()

		if c.bots[team.ID] == b {
			delete(c.bots, team.ID)
		}
	}()

	return b, true, nil
}

// ConnectTeams connects every team saved in storage and returns the number of teams connected. A team
// that fails to load or connect is logged and skipped
func (c *Controller) ConnectTeams() (count int, err error) {
	records, err := c.Teams.All()
	if err != nil {
		return 0, err
	}

	for id, raw := range records {
		var team TeamRecord
		if err := json.Unmarshal(raw, &team); err != nil {
			c.log.Printf("Skipping team [%s] with unreadable record: %v", id, err)
			continue
		}

		if _, connected, err := c.ConnectTeam(team); err != nil {
			c.log.Printf("Error connecting team [%s]: %v", id, err)
		} else if connected {
			count++
		}
	}

	return count, nil
}

// Bot returns the running bot of a team, if any
func (c *Controller) Bot(teamID string) (b *Bot, ok bool) {
	c.botsMu.Lock()
	defer c.botsMu.Unlock()

	b, ok = c.bots[teamID]
	return b, ok
}

// Close stops all connected teams and closes the controller's resources (including its storage). The
// last error encountered is returned
func (c *Controller) Close() (err error) {
	c.botsMu.Lock()
	for _, b := range c.bots {
		b.Stop()
	}
	c.botsMu.Unlock()

	c.running.Wait()

	for _, closer := range c.closers {
		if cerr := closer.Close(); cerr != nil {
			err = cerr
		}
	}

	return err
}
