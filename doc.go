/*
Package starterbot provides the building blocks of a starter slack bot.

A Controller owns what is shared by all bots: storage, receive middleware, event handlers, logging
and instrumentation. A Bot is a single realtime connection to slack, either a custom integration
running with a static token or one of the teams that installed the app through its OAuth flow.

Every inbound event goes through the receive middleware before reaching handlers. The Enricher is
the middleware that caches the user and channel of every event, fetching from slack and saving
whatever storage doesn't have yet. Both lookups run concurrently and processing resumes once both
are done, whatever their outcome.

Handlers are registered with On (by event type) or Hears (by pattern, for message events):

	c, err := starterbot.NewBuilder("starterbot", v).
		WithStorerErr(starterbot.OpenStorer("starterbot", v, meter)).
		WithEnrichment().
		WithStarterResponders().
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	c.Hears([]string{"^ping$"}, []string{starterbot.DirectMentionEvent}, func(b *starterbot.Bot, e *starterbot.Event) {
		b.Reply(e, "pong")
	})

	b, err := c.Spawn(token)
	if err != nil {
		log.Fatal(err)
	}

	err = b.Run()
*/
package starterbot
