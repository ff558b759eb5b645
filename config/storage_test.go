package config_test

import (
	"github.com/alexandre-normand/starterbot/config"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestResolveStorage(t *testing.T) {
	tests := map[string]struct {
		values           map[string]interface{}
		expectedKind     config.StorageKind
		expectedLocation string
	}{
		"Mongo": {
			values:           map[string]interface{}{config.MongoDBURIKey: "mongodb://localhost/bot", config.RedisURLKey: "redis://localhost"},
			expectedKind:     config.MongoDBStorage,
			expectedLocation: "mongodb://localhost/bot",
		},
		"Datastore": {
			values:           map[string]interface{}{config.DatastoreProjectIDKey: "youppi", config.SQLitePathKey: "bot.db"},
			expectedKind:     config.DatastoreStorage,
			expectedLocation: "youppi",
		},
		"Redis": {
			values:           map[string]interface{}{config.RedisURLKey: "redis://localhost:6379/0"},
			expectedKind:     config.RedisStorage,
			expectedLocation: "redis://localhost:6379/0",
		},
		"SQLite": {
			values:           map[string]interface{}{config.SQLitePathKey: "~/bot.db"},
			expectedKind:     config.SQLiteStorage,
			expectedLocation: "~/bot.db",
		},
		"LevelDBForCustomIntegration": {
			values:           map[string]interface{}{config.TokenKey: "xoxb-1"},
			expectedKind:     config.LevelDBStorage,
			expectedLocation: "./db_slack_bot_ci/",
		},
		"LevelDBForApp": {
			values:           map[string]interface{}{config.ClientIDKey: "id"},
			expectedKind:     config.LevelDBStorage,
			expectedLocation: "./db_slack_bot_a/",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v := config.NewViperWithDefaults()
			for k, val := range tc.values {
				v.Set(k, val)
			}

			kind, location := config.ResolveStorage(v)
			assert.Equal(t, tc.expectedKind, kind)
			assert.Equal(t, tc.expectedLocation, location)
		})
	}
}
