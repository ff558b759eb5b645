package starterbot_test

import (
	"fmt"
	"github.com/alexandre-normand/starterbot"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/alexandre-normand/starterbot/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"log"
	"testing"
)

func newBuilder() *starterbot.Builder {
	return starterbot.NewBuilder("jane", config.NewViperWithDefaults(), starterbot.OptionLog(log.New(ioutil.Discard, "", 0)))
}

func TestBuildWithStorage(t *testing.T) {
	storer := new(mocks.Storer)

	c, err := newBuilder().
		WithStorerErr(storer, nil).
		WithEnrichment().
		WithStarterResponders().
		Build()

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "users", c.Users.Name())
	assert.Equal(t, "channels", c.Channels.Name())
	assert.Equal(t, "teams", c.Teams.Name())

	storer.On("Close").Return(nil)
	assert.NoError(t, c.Close())
	storer.AssertExpectations(t)
}

func TestBuildWithoutStorage(t *testing.T) {
	c, err := newBuilder().
		WithStarterResponders().
		Build()

	assert.EqualError(t, err, "Storage must be set")
	assert.Nil(t, c)
}

func TestBuildWithStorageError(t *testing.T) {
	c, err := newBuilder().
		WithStorerErr(nil, fmt.Errorf("can't open storage")).
		WithEnrichment().
		WithRespondersErr(nil, fmt.Errorf("second error")).
		Build()

	assert.EqualError(t, err, "can't open storage")
	assert.Nil(t, c)
}

func TestEnrichmentRequiresStorage(t *testing.T) {
	c, err := newBuilder().
		WithEnrichment().
		Build()

	assert.EqualError(t, err, "Storage must be set before enrichment")
	assert.Nil(t, c)
}

func TestBuildWithInvalidResponderClosesStorage(t *testing.T) {
	storer := new(mocks.Storer)
	storer.On("Close").Return(nil)

	c, err := newBuilder().
		WithStorerErr(storer, nil).
		WithRespondersErr([]config.Responder{{Patterns: []string{"[a-"}, Events: []string{starterbot.AmbientEvent}, Reply: "nope"}}, nil).
		Build()

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "invalid responder [0]")
	}
	assert.Nil(t, c)
	storer.AssertExpectations(t)
}

func TestCloseReturnsStorageError(t *testing.T) {
	storer := new(mocks.Storer)
	storer.On("Close").Return(fmt.Errorf("should be called"))

	c, err := newBuilder().
		WithStorerErr(storer, nil).
		Build()
	require.NoError(t, err)

	assert.EqualError(t, c.Close(), "should be called")
}
