package starterbot

import (
	"context"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/api/metric"
)

// branchCount is the number of lookups an event waits on before processing continues: one for its
// user and one for its channel
const branchCount = 2

// Entity kinds cached by the enricher
const (
	userKind    = "user"
	channelKind = "channel"
)

// Outcomes of a single enrichment branch
const (
	hitOutcome         = "hit"
	missOutcome        = "miss"
	skippedOutcome     = "skipped"
	lookupErrorOutcome = "lookupError"
	fetchErrorOutcome  = "fetchError"
	saveErrorOutcome   = "saveError"
)

var enrichmentOutcomes = []string{hitOutcome, missOutcome, skippedOutcome, lookupErrorOutcome, fetchErrorOutcome, saveErrorOutcome}

// Enricher is a receive middleware that makes sure the user and channel of every event are cached.
// Anything missing is fetched from slack and saved. Cached records are never refreshed. Lookup, fetch
// and save errors are logged and never stop an event from being processed
type Enricher struct {
	users    *store.Collection
	channels *store.Collection
	log      SLogger

	// outcomeCounters holds a counter per entity kind and outcome
	outcomeCounters map[string]map[string]metric.BoundInt64Counter
}

// fetcher loads a record from slack
type fetcher func(id string) (record interface{}, err error)

// NewEnricher returns a new Enricher caching users and channels in their respective collections
func NewEnricher(name string, users *store.Collection, channels *store.Collection, logger SLogger, meter metric.Meter) (en *Enricher) {
	en = new(Enricher)
	en.users = users
	en.channels = channels
	en.log = logger
	en.outcomeCounters = make(map[string]map[string]metric.BoundInt64Counter)

	c := metric.Must(meter).NewInt64Counter("enrichmentOutcomes")
	for _, kind := range []string{userKind, channelKind} {
		en.outcomeCounters[kind] = make(map[string]metric.BoundInt64Counter)
		for _, outcome := range enrichmentOutcomes {
			en.outcomeCounters[kind][outcome] = c.Bind(label.String("name", name), label.String("kind", kind), label.String("outcome", outcome))
		}
	}

	return en
}

// Middleware returns the enricher as a ReceiveMiddleware using the receiving bot to fetch metadata
func (en *Enricher) Middleware() ReceiveMiddleware {
	return func(b *Bot, e *Event, next func()) {
		en.Enrich(b, e, next)
	}
}

// Enrich checks the cache for the event's user and channel concurrently, fetching and saving whatever
// is missing with f. next is called exactly once, after both lookups have completed, whatever their outcome
func (en *Enricher) Enrich(f MetadataFinder, e *Event, next func()) {
	done := make(chan struct{}, branchCount)

	go en.runBranch(userKind, e.User, en.users, new(slack.User), func(id string) (interface{}, error) {
		return f.GetUserInfo(id)
	}, done)

	go en.runBranch(channelKind, e.Channel, en.channels, new(slack.Channel), func(id string) (interface{}, error) {
		return f.GetConversationInfo(id, false)
	}, done)

	for i := 0; i < branchCount; i++ {
		<-done
	}

	next()
}

// runBranch enriches a single entity and signals its completion on done, on every path
func (en *Enricher) runBranch(kind string, id string, c *store.Collection, cached interface{}, fetch fetcher, done chan<- struct{}) {
	defer func() {
		done <- struct{}{}
	}()

	outcome := en.enrichEntity(kind, id, c, cached, fetch)
	en.outcomeCounters[kind][outcome].Add(context.Background(), 1)
}

// enrichEntity looks up id in the collection and fetches and saves it when it's not there yet
func (en *Enricher) enrichEntity(kind string, id string, c *store.Collection, cached interface{}, fetch fetcher) (outcome string) {
	if id == "" {
		return skippedOutcome
	}

	found, err := c.Get(id, cached)
	if err != nil {
		en.log.Printf("Failed to look up %s [%s] in storage: %v", kind, id, err)
		return lookupErrorOutcome
	}

	if found {
		en.log.Debugf("%s [%s] already cached", kind, id)
		return hitOutcome
	}

	record, err := fetch(id)
	if err != nil {
		en.log.Printf("Failed to fetch %s info for [%s]: %v", kind, id, err)
		return fetchErrorOutcome
	}

	if err = c.Save(id, record); err != nil {
		en.log.Printf("Failed to save %s [%s]: %v", kind, id, err)
		return saveErrorOutcome
	}

	en.log.Debugf("Cached new %s [%s]", kind, id)
	return missOutcome
}
