package starterbot

import (
	"github.com/alexandre-normand/starterbot/config"
	"github.com/pkg/errors"
)

const (
	channelJoinReply = "I'm here!"
	helloReply       = "Hello!"
)

// allMessageEvents lists every message event type
var allMessageEvents = []string{AmbientEvent, MentionEvent, DirectMentionEvent, DirectMessageEvent}

// replyWith returns a handler replying text on the channel of the event
func replyWith(text string) Handler {
	return func(b *Bot, e *Event) {
		if err := b.Reply(e, text); err != nil {
			b.log.Printf("Error replying to [%s] event on [%s]: %v", e.Type, e.Channel, err)
		}
	}
}

// RegisterStarterResponders registers the responders every starterbot comes with: a greeting when the
// bot joins a channel, a reply to hello and logging of the realtime connection going up and down
func RegisterStarterResponders(c *Controller) (err error) {
	c.On([]string{BotChannelJoinEvent}, replyWith(channelJoinReply))

	if err = c.Hears([]string{"hello"}, allMessageEvents, replyWith(helloReply)); err != nil {
		return err
	}

	c.On([]string{RTMOpenEvent}, func(b *Bot, e *Event) {
		b.log.Printf("** The RTM api just connected!")
	})

	c.On([]string{RTMCloseEvent}, func(b *Bot, e *Event) {
		b.log.Printf("** The RTM api just closed")
	})

	return nil
}

// RegisterResponders registers canned responders replying with a fixed message to matching messages
func RegisterResponders(c *Controller, responders []config.Responder) (err error) {
	for i, r := range responders {
		if err = c.Hears(r.Patterns, r.Events, replyWith(r.Reply)); err != nil {
			return errors.Wrapf(err, "invalid responder [%d]", i)
		}
	}

	return nil
}
