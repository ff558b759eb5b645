package starterbot

import (
	"github.com/alexandre-normand/starterbot/config"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/alexandre-normand/starterbot/store/datastoredb"
	"github.com/alexandre-normand/starterbot/store/inmemorydb"
	"github.com/alexandre-normand/starterbot/store/mongodb"
	"github.com/alexandre-normand/starterbot/store/redisdb"
	"github.com/alexandre-normand/starterbot/store/sqlitedb"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/api/metric"
	"google.golang.org/api/option"
	"path/filepath"
)

// OpenStorer opens the storage selected by the configuration, instruments it and, if a memory cache
// size is configured, puts an in-memory cache in front of it
func OpenStorer(name string, v *viper.Viper, meter metric.Meter) (storer store.SiloStringStorer, err error) {
	kind, location := config.ResolveStorage(v)

	switch kind {
	case config.MongoDBStorage:
		storer, err = mongodb.New(location, v.GetString(config.MongoDatabaseKey))
	case config.DatastoreStorage:
		var opts []option.ClientOption
		if credentialsFile := v.GetString(config.DatastoreCredentialsFileKey); credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
		storer, err = datastoredb.New(name, location, opts...)
	case config.RedisStorage:
		storer, err = redisdb.New(name, location)
	case config.SQLiteStorage:
		storer, err = sqlitedb.New(location)
	default:
		dir := filepath.Clean(location)
		storer, err = store.NewLevelDB(filepath.Base(dir), filepath.Dir(dir))
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s storage", kind)
	}

	storer = store.NewSiloStringStorerWithTelemetry(storer, name, meter)

	if size := v.GetInt(config.StorageMemoryCacheSizeKey); size > 0 {
		if storer, err = inmemorydb.New(storer, size); err != nil {
			return nil, errors.Wrap(err, "failed to create in-memory storage cache")
		}
	}

	return storer, nil
}
