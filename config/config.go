// Package config provides the configuration keys and loading functions of a starterbot instance.
// Configuration comes from viper defaults, environment variables (optionally loaded from a .env file)
// and command-line flags bound by the caller
package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"os"
)

const (
	NameKey                               = "name"                                           // Name of the bot, used for logging, metrics and storage namespacing. String value. Defaults to starterbot
	DebugKey                              = "debug"                                          // Debug mode, boolean debug value. Defaults to false
	TokenKey                              = "token"                                          // Static token of a custom integration
	SlackTokenKey                         = "slackToken"                                     // Fallback static token, read when token is empty
	ClientIDKey                           = "clientId"                                       // Client id of an OAuth app
	ClientSecretKey                       = "clientSecret"                                   // Client secret of an OAuth app
	PortKey                               = "port"                                           // Port the OAuth app listens on
	MongoDBURIKey                         = "mongodbUri"                                     // MongoDB connection string selecting the mongo storage
	MongoDatabaseKey                      = "mongo.database"                                 // Database used when the connection string doesn't name one. Defaults to starterbot
	DatastoreProjectIDKey                 = "datastore.projectId"                            // Google cloud project id selecting the datastore storage
	DatastoreCredentialsFileKey           = "datastore.credentialsFile"                      // Optional path to google cloud json credentials
	RedisURLKey                           = "redis.url"                                      // Redis url selecting the redis storage
	SQLitePathKey                         = "sqlite.path"                                    // Path of a sqlite database file selecting the sqlite storage
	StorageMemoryCacheSizeKey             = "storage.memoryCacheSize"                        // Number of records kept in memory in front of the storage, int value. Defaults to 0 (disabled)
	RespondersFileKey                     = "respondersFile"                                 // Optional path to a yaml file of canned responders
	OAuthScopesKey                        = "oauth.scopes"                                   // Scopes requested when installing the OAuth app. Defaults to [bot]
	MessageProcessingPartitionCount       = "advanced.messageProcessingPartitionCount"       // Number of partitions (event processing workers). Must be a power of two. Defaults to 16
	MessageProcessingBufferedMessageCount = "advanced.messageProcessingBufferedMessageCount" // Number of events buffered by each partition. Defaults to 10
)

const (
	defaultName                            = "starterbot"
	defaultMongoDatabase                   = "starterbot"
	defaultMessageProcessingPartitionCount = 16
	defaultMessageProcessingBufferedCount  = 10
)

// envBindings maps configuration keys to the environment variables they're read from
var envBindings = map[string]string{
	TokenKey:                    "TOKEN",
	SlackTokenKey:               "SLACK_TOKEN",
	ClientIDKey:                 "CLIENT_ID",
	ClientSecretKey:             "CLIENT_SECRET",
	PortKey:                     "PORT",
	MongoDBURIKey:               "MONGODB_URI",
	DatastoreProjectIDKey:       "DATASTORE_PROJECT_ID",
	DatastoreCredentialsFileKey: "GOOGLE_APPLICATION_CREDENTIALS_FILE",
	RedisURLKey:                 "REDIS_URL",
	SQLitePathKey:               "SQLITE_PATH",
	RespondersFileKey:           "RESPONDERS_FILE",
	DebugKey:                    "DEBUG",
}

// NewViperWithDefaults creates a new viper instance with defaults values set
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	return LayerConfigWithDefaults(v)
}

// LayerConfigWithDefaults sets defaults for any value not already set on the viper instance
func LayerConfigWithDefaults(v *viper.Viper) *viper.Viper {
	v.SetDefault(NameKey, defaultName)
	v.SetDefault(DebugKey, false)
	v.SetDefault(MongoDatabaseKey, defaultMongoDatabase)
	v.SetDefault(StorageMemoryCacheSizeKey, 0)
	v.SetDefault(OAuthScopesKey, []string{"bot"})
	v.SetDefault(MessageProcessingPartitionCount, defaultMessageProcessingPartitionCount)
	v.SetDefault(MessageProcessingBufferedMessageCount, defaultMessageProcessingBufferedCount)

	return v
}

// BindEnv binds every configuration key read from the environment to its environment variable
func BindEnv(v *viper.Viper) (err error) {
	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return errors.Wrapf(err, "failed to bind [%s] to environment variable [%s]", key, env)
		}
	}

	return nil
}

// LoadEnvFile loads environment variables from a .env file. A missing file isn't an error since
// the file is only meant for local development. Variables already set in the environment win
func LoadEnvFile(path string) (err error) {
	if _, err = os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err = godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load environment file [%s]", path)
	}

	return nil
}
