package starterbot

import (
	"fmt"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/spf13/viper"
)

// Builder holds a starterbot controller to build
type Builder struct {
	controller *Controller
	err        error
}

// NewBuilder returns a new Builder used to set up a new starterbot controller
func NewBuilder(name string, v *viper.Viper, options ...Option) (sb *Builder) {
	sb = new(Builder)
	sb.controller = New(name, v, options...)

	return sb
}

// WithStorerErr sets the storage from a creation function returning (SiloStringStorer, error)
func (sb *Builder) WithStorerErr(storer store.SiloStringStorer, err error) *Builder {
	if sb.err == nil && err != nil {
		sb.err = err
	}

	if sb.err != nil {
		return sb
	}

	sb.controller.SetStorer(storer)

	return sb
}

// WithEnrichment registers the Enricher caching users and channels of every event. The storage
// must already be set
func (sb *Builder) WithEnrichment() *Builder {
	if sb.err != nil {
		return sb
	}

	c := sb.controller
	if c.storer == nil {
		sb.err = fmt.Errorf("Storage must be set before enrichment")
		return sb
	}

	c.Use(NewEnricher(c.name, c.Users, c.Channels, c.log, c.meter).Middleware())

	return sb
}

// WithMiddleware registers a receive middleware
func (sb *Builder) WithMiddleware(mw ReceiveMiddleware) *Builder {
	if sb.err != nil {
		return sb
	}

	sb.controller.Use(mw)

	return sb
}

// WithStarterResponders registers the starter responders
func (sb *Builder) WithStarterResponders() *Builder {
	if sb.err != nil {
		return sb
	}

	sb.err = RegisterStarterResponders(sb.controller)

	return sb
}

// WithRespondersErr registers canned responders from a creation function returning ([]config.Responder, error)
func (sb *Builder) WithRespondersErr(responders []config.Responder, err error) *Builder {
	if sb.err == nil && err != nil {
		sb.err = err
	}

	if sb.err != nil {
		return sb
	}

	sb.err = RegisterResponders(sb.controller, responders)

	return sb
}

// Build returns the built controller. If there was an error during setup, anything already
// opened is closed and the error is returned along with a nil controller
func (sb *Builder) Build() (c *Controller, err error) {
	if sb.err == nil && sb.controller.storer == nil {
		sb.err = fmt.Errorf("Storage must be set")
	}

	if sb.err != nil {
		sb.controller.Close()
		return nil, sb.err
	}

	return sb.controller, nil
}
