package starterbot_test

import (
	"github.com/alexandre-normand/starterbot"
	"github.com/alexandre-normand/starterbot/config"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/alexandre-normand/starterbot/store/inmemorydb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/api/metric"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSQLiteStorerWithMemoryCache(t *testing.T) {
	dir, err := ioutil.TempDir("", "storage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	v := config.NewViperWithDefaults()
	v.Set(config.SQLitePathKey, filepath.Join(dir, "bot.db"))
	v.Set(config.StorageMemoryCacheSizeKey, 10)

	storer, err := starterbot.OpenStorer("test", v, metric.Meter{})
	require.NoError(t, err)
	defer storer.Close()

	assert.IsType(t, &inmemorydb.InMemoryDB{}, storer)

	require.NoError(t, storer.PutSiloString(store.UsersSilo, "U1", `{"id":"U1"}`))
	value, err := storer.GetSiloString(store.UsersSilo, "U1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"U1"}`, value)
}

func TestOpenStorerWithoutMemoryCache(t *testing.T) {
	dir, err := ioutil.TempDir("", "storage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	v := config.NewViperWithDefaults()
	v.Set(config.SQLitePathKey, filepath.Join(dir, "bot.db"))

	storer, err := starterbot.OpenStorer("test", v, metric.Meter{})
	require.NoError(t, err)
	defer storer.Close()

	assert.IsType(t, store.SiloStringStorerWithTelemetry{}, storer)

	_, err = storer.GetSiloString(store.ChannelsSilo, "C1")
	assert.True(t, store.IsNotFound(err))
}

func TestOpenStorerWithInvalidRedisURL(t *testing.T) {
	v := config.NewViperWithDefaults()
	v.Set(config.RedisURLKey, "localhost:6379")

	_, err := starterbot.OpenStorer("test", v, metric.Meter{})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "failed to open redis storage")
	}
}
