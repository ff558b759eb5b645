package config

import (
	"github.com/spf13/viper"
)

// StorageKind identifies a storage backend
type StorageKind string

// Storage backends, listed in order of precedence
const (
	MongoDBStorage   StorageKind = "mongodb"
	DatastoreStorage StorageKind = "datastore"
	RedisStorage     StorageKind = "redis"
	SQLiteStorage    StorageKind = "sqlite"
	LevelDBStorage   StorageKind = "leveldb"
)

const (
	customIntegrationStoragePath = "./db_slack_bot_ci/"
	appStoragePath               = "./db_slack_bot_a/"
)

// ResolveStorage returns the storage backend to use along with its location (a connection string, project id
// or path, depending on the kind). The first configured backend wins and the leveldb storage is the fallback,
// in a directory that differs between custom integrations and apps
func ResolveStorage(v *viper.Viper) (kind StorageKind, location string) {
	if uri := v.GetString(MongoDBURIKey); uri != "" {
		return MongoDBStorage, uri
	}

	if projectID := v.GetString(DatastoreProjectIDKey); projectID != "" {
		return DatastoreStorage, projectID
	}

	if url := v.GetString(RedisURLKey); url != "" {
		return RedisStorage, url
	}

	if path := v.GetString(SQLitePathKey); path != "" {
		return SQLiteStorage, path
	}

	if Token(v) != "" {
		return LevelDBStorage, customIntegrationStoragePath
	}

	return LevelDBStorage, appStoragePath
}
