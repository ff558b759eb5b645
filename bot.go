package starterbot

import (
	"github.com/alexandre-normand/starterbot/config"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"regexp"
	"strings"
	"sync"
)

// Messages sent to whoever installs the bot
const (
	installGreeting   = "I am a bot that has just joined your team"
	installInvitation = "You must now /invite me to a channel so that I can be of use!"
)

// errInvalidAuth is returned by Run when slack rejects the bot's token
var errInvalidAuth = errors.New("invalid credentials")

// Bot is a single connection to slack. It converts realtime events to Events, hands them to its
// controller's receive pipeline and provides the primitives to talk back to slack
type Bot struct {
	controller *Controller
	chat       chatDriver
	finder     MetadataFinder
	conn       rtmConnection
	events     <-chan slack.RTMEvent
	router     *partitionRouter
	log        SLogger

	// teamID is the id of the team the bot was connected for in app mode. Empty for a custom integration
	teamID string

	identityMu    sync.RWMutex
	id            string
	name          string
	mention       *regexp.Regexp
	directMention *regexp.Regexp
	connected     bool

	stopped  chan struct{}
	stopOnce sync.Once
}

// newBot creates a new Bot for a connection. The bot doesn't process anything until Run is called
func newBot(c *Controller, api slackAPI, conn rtmConnection, events <-chan slack.RTMEvent) (b *Bot, err error) {
	b = new(Bot)
	b.controller = c
	b.chat = newChatDriverWithTelemetry(api, c.name, c.meter)
	b.finder = NewMetadataFinderWithTelemetry(api, c.name, c.meter)
	b.conn = conn
	b.events = events
	b.log = c.log
	b.stopped = make(chan struct{})

	b.router, err = newPartitionRouter(c.config.GetInt(config.MessageProcessingPartitionCount), c.config.GetInt(config.MessageProcessingBufferedMessageCount), c.log, c.instrumenter)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Run connects to slack and processes events until Stop is called, the event stream ends or slack
// rejects the bot's credentials (in which case an error is returned)
func (b *Bot) Run() (err error) {
	b.router.start(func(e *Event) {
		b.controller.receive(b, e)
	})
	defer b.router.stop()

	go b.conn.ManageConnection()

	for {
		select {
		case <-b.stopped:
			if b.isConnected() {
				b.controller.trigger(b, &Event{Type: RTMCloseEvent})
			}
			return nil

		case msg, ok := <-b.events:
			if !ok {
				return nil
			}

			if err = b.handleRTMEvent(msg); err != nil {
				return err
			}
		}
	}
}

// Stop disconnects the bot and makes Run return once events already queued have been processed.
// It is safe to call Stop more than once
func (b *Bot) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopped)

		if err := b.conn.Disconnect(); err != nil {
			b.log.Debugf("Error disconnecting: %v", err)
		}
	})
}

// handleRTMEvent handles connection events directly and routes anything else that converts to an Event
func (b *Bot) handleRTMEvent(msg slack.RTMEvent) (err error) {
	switch ev := msg.Data.(type) {
	case *slack.ConnectedEvent:
		b.setIdentity(ev.Info.User.ID, ev.Info.User.Name)
		b.log.Printf("Connected as [%s] with id [%s] (connection count [%d])", ev.Info.User.Name, ev.Info.User.ID, ev.ConnectionCount)
		b.controller.trigger(b, &Event{Type: RTMOpenEvent, Data: ev})

	case *slack.DisconnectedEvent:
		b.setConnected(false)
		b.log.Printf("Disconnected (intentional [%t])", ev.Intentional)
		b.controller.trigger(b, &Event{Type: RTMCloseEvent, Data: ev})

	case *slack.LatencyReport:
		b.log.Debugf("Current latency: %v", ev.Value)
		b.controller.recordSlackLatency(ev.Value)

	case *slack.RTMError:
		b.log.Printf("Error: %s", ev.Error())

	case *slack.InvalidAuthEvent:
		b.log.Printf("Invalid credentials")
		return errInvalidAuth

	default:
		if e, ok := b.toEvent(msg.Data); ok {
			b.router.route(e)
		}
	}

	return nil
}

// toEvent converts a realtime payload to an Event. Payloads of no interest are reported with ok set to false
func (b *Bot) toEvent(data interface{}) (e *Event, ok bool) {
	switch ev := data.(type) {
	case *slack.MessageEvent:
		return b.toMessageEvent(ev)

	case *slack.MemberJoinedChannelEvent:
		eventType := UserChannelJoinEvent
		if ev.User == b.ID() {
			eventType = BotChannelJoinEvent
		}

		return &Event{Type: eventType, User: ev.User, Channel: ev.Channel, Data: ev}, true

	case *slack.ChannelJoinedEvent:
		return &Event{Type: ChannelJoinedEvent, Channel: ev.Channel.ID, Data: ev}, true
	}

	return nil, false
}

// toMessageEvent classifies a message from the bot's point of view. Acknowledgements of our own messages,
// messages sent by the bot and messages with a subtype (edits, deletions, channel notices, etc) are ignored
func (b *Bot) toMessageEvent(ev *slack.MessageEvent) (e *Event, ok bool) {
	// reply_to is set by slack when a message sent by us has been acknowledged
	if ev.ReplyTo > 0 || ev.SubType != "" {
		return nil, false
	}

	b.identityMu.RLock()
	defer b.identityMu.RUnlock()

	if ev.User == "" || ev.User == b.id {
		return nil, false
	}

	e = &Event{User: ev.User, Channel: ev.Channel, Text: ev.Text, Timestamp: ev.Timestamp, Data: ev}
	e.Type, e.Text = classifyMessage(ev.Channel, ev.Text, b.mention, b.directMention)

	return e, true
}

// classifyMessage returns the type of a message along with the text handlers should match against.
// Direct mentions have the leading mention stripped from their text
func classifyMessage(channelID string, text string, mention *regexp.Regexp, directMention *regexp.Regexp) (eventType string, content string) {
	if strings.HasPrefix(channelID, "D") {
		return DirectMessageEvent, text
	}

	if directMention != nil {
		if loc := directMention.FindStringIndex(text); loc != nil {
			return DirectMentionEvent, text[loc[1]:]
		}
	}

	if mention != nil && mention.MatchString(text) {
		return MentionEvent, text
	}

	return AmbientEvent, text
}

// setIdentity keeps the bot's identity and the expressions detecting mentions of it
func (b *Bot) setIdentity(id string, name string) {
	b.identityMu.Lock()
	defer b.identityMu.Unlock()

	b.id = id
	b.name = name
	b.mention = regexp.MustCompile("<@" + regexp.QuoteMeta(id) + `(\|[^>]*)?>`)
	b.directMention = regexp.MustCompile("^<@" + regexp.QuoteMeta(id) + `(\|[^>]*)?>:?\s*`)
	b.connected = true
}

func (b *Bot) setConnected(connected bool) {
	b.identityMu.Lock()
	defer b.identityMu.Unlock()

	b.connected = connected
}

func (b *Bot) isConnected() bool {
	b.identityMu.RLock()
	defer b.identityMu.RUnlock()

	return b.connected
}

// ID returns the bot's user id. It is empty until the bot is connected
func (b *Bot) ID() string {
	b.identityMu.RLock()
	defer b.identityMu.RUnlock()

	return b.id
}

// Name returns the bot's user name. It is empty until the bot is connected
func (b *Bot) Name() string {
	b.identityMu.RLock()
	defer b.identityMu.RUnlock()

	return b.name
}

// TeamID returns the id of the team the bot was connected for. It is empty for a custom integration
func (b *Bot) TeamID() string {
	return b.teamID
}

// GetUserInfo fetches a user's info from slack
func (b *Bot) GetUserInfo(userID string) (user *slack.User, err error) {
	return b.finder.GetUserInfo(userID)
}

// GetConversationInfo fetches a conversation's info from slack
func (b *Bot) GetConversationInfo(channelID string, includeLocale bool) (channel *slack.Channel, err error) {
	return b.finder.GetConversationInfo(channelID, includeLocale)
}

// Reply sends text on the channel of the event
func (b *Bot) Reply(e *Event, text string) (err error) {
	return b.Say(e.Channel, text)
}

// Say sends text on a channel
func (b *Bot) Say(channelID string, text string) (err error) {
	if _, _, err = b.chat.PostMessage(channelID, slack.MsgOptionText(text, false), slack.MsgOptionAsUser(true)); err != nil {
		return errors.Wrapf(err, "failed to send message to [%s]", channelID)
	}

	return nil
}

// StartPrivateConversation opens (or reuses) a direct conversation with a user and returns its channel id
func (b *Bot) StartPrivateConversation(userID string) (channelID string, err error) {
	channel, _, _, err := b.chat.OpenConversation(&slack.OpenConversationParameters{Users: []string{userID}})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open conversation with [%s]", userID)
	}

	return channel.ID, nil
}

// GreetInstaller tells the user who installed the bot what it is and what to do next
func (b *Bot) GreetInstaller(userID string) (err error) {
	channelID, err := b.StartPrivateConversation(userID)
	if err != nil {
		return err
	}

	for _, text := range []string{installGreeting, installInvitation} {
		if err = b.Say(channelID, text); err != nil {
			return err
		}
	}

	return nil
}
