package inmemorydb

import (
	"github.com/alexandre-normand/starterbot/store"
	"github.com/hashicorp/golang-lru"
)

// InMemoryDB implements the store.SiloStringStorer interface and keeps the most
// recently used values in an in-memory ARC cache while writing through puts to the
// wrapped (persistent) SiloStringStorer
type InMemoryDB struct {
	persistentStorer store.SiloStringStorer
	cache            *lru.ARCCache
}

// cacheKey identifies a cached value
type cacheKey struct {
	silo string
	key  string
}

// New returns a new instance of InMemoryDB wrapping the persistent SiloStringStorer and
// keeping at most size values in memory
func New(storer store.SiloStringStorer, size int) (imdb *InMemoryDB, err error) {
	imdb = new(InMemoryDB)
	imdb.persistentStorer = storer

	imdb.cache, err = lru.NewARC(size)
	if err != nil {
		return nil, err
	}

	return imdb, nil
}

// GetSiloString returns the value associated to a given key in the given silo. Values
// not in memory are loaded from the persistent storer and kept in memory. Values that
// aren't found are not cached
func (imdb *InMemoryDB) GetSiloString(silo string, key string) (value string, err error) {
	ck := cacheKey{silo: silo, key: key}
	if v, ok := imdb.cache.Get(ck); ok {
		return v.(string), nil
	}

	value, err = imdb.persistentStorer.GetSiloString(silo, key)
	if err != nil {
		return "", err
	}

	imdb.cache.Add(ck, value)

	return value, nil
}

// PutSiloString stores the key/value to a silo of the database. The key/value is persisted to
// persistent storage first and then kept in memory
func (imdb *InMemoryDB) PutSiloString(silo string, key string, value string) (err error) {
	err = imdb.persistentStorer.PutSiloString(silo, key, value)
	if err != nil {
		return err
	}

	imdb.cache.Add(cacheKey{silo: silo, key: key}, value)
	return nil
}

// ScanSilo returns all key/values for a silo from the persistent storer. Since the cache
// is bounded, it can't answer a scan on its own
func (imdb *InMemoryDB) ScanSilo(silo string) (entries map[string]string, err error) {
	return imdb.persistentStorer.ScanSilo(silo)
}

// Close purges the cache and closes the underlying storer
func (imdb *InMemoryDB) Close() (err error) {
	imdb.cache.Purge()

	return imdb.persistentStorer.Close()
}
