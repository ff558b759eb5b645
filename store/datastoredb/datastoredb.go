package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"github.com/alexandre-normand/starterbot/store"
	"google.golang.org/api/option"
	"sync"
)

// DatastoreDB implements the store.SiloStringStorer interface. Silos map to datastore entity
// kinds prefixed by a namespace (usually the bot name) to isolate data between instances
// sharing a project
type DatastoreDB struct {
	datastorer
	namespace string

	// guards reconnections of the datastorer
	sync.RWMutex
}

// EntryValue represents an entity/entry value mapped to a datastore key
type EntryValue struct {
	Value string `datastore:",noindex"`
}

// New returns a new instance of DatastoreDB for the given namespace. This function also requires a
// gcloudProjectID as well as, optionally, client options to provide gcloud client credentials
func New(namespace string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	return newWithDatastorer(namespace, &gcdatastore{gcloudProjectID: gcloudProjectID, gcloudClientOpts: gcloudClientOpts})
}

// newWithDatastorer connects the datastorer and validates connectivity
func newWithDatastorer(namespace string, ds datastorer) (dsdb *DatastoreDB, err error) {
	if err = ds.connect(); err != nil {
		return nil, err
	}

	dsdb = &DatastoreDB{datastorer: ds, namespace: namespace}

	if err = dsdb.testDB(); err != nil {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// testDB makes a lightweight call to the datastore to validate connectivity and credentials
func (dsdb *DatastoreDB) testDB() (err error) {
	_, err = dsdb.GetSiloString("connectivity", "testConnectivity")

	if err != nil && !store.IsNotFound(err) {
		return err
	}

	return nil
}

// kind returns the datastore entity kind for a silo
func (dsdb *DatastoreDB) kind(silo string) string {
	return dsdb.namespace + "." + silo
}

// GetSiloString returns the value associated to a given key in a silo. If the value is not
// found, store.ErrNotFound is returned. Other errors cause a reconnection and a single retry
func (dsdb *DatastoreDB) GetSiloString(silo string, key string) (value string, err error) {
	k := datastore.NameKey(dsdb.kind(silo), key, nil)

	var e EntryValue
	err = dsdb.withReconnect(func() error {
		return dsdb.datastorer.Get(context.Background(), k, &e)
	})

	if err == datastore.ErrNoSuchEntity {
		return "", store.ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return e.Value, nil
}

// PutSiloString stores the key/value to the silo
func (dsdb *DatastoreDB) PutSiloString(silo string, key string, value string) (err error) {
	k := datastore.NameKey(dsdb.kind(silo), key, nil)

	return dsdb.withReconnect(func() error {
		_, err := dsdb.datastorer.Put(context.Background(), k, &EntryValue{Value: value})
		return err
	})
}

// ScanSilo returns all key/values of a silo
func (dsdb *DatastoreDB) ScanSilo(silo string) (entries map[string]string, err error) {
	var vals []*EntryValue
	var keys []*datastore.Key

	err = dsdb.withReconnect(func() (err error) {
		vals = nil
		keys, err = dsdb.datastorer.GetAll(context.Background(), datastore.NewQuery(dsdb.kind(silo)), &vals)
		return err
	})
	if err != nil {
		return nil, err
	}

	entries = make(map[string]string)
	for i, key := range keys {
		entries[key.Name] = vals[i].Value
	}

	return entries, nil
}

// withReconnect runs the operation and, if it fails with anything else than ErrNoSuchEntity,
// reconnects and runs it once more
func (dsdb *DatastoreDB) withReconnect(operation func() error) (err error) {
	dsdb.RLock()
	err = operation()
	dsdb.RUnlock()

	if err == nil || err == datastore.ErrNoSuchEntity {
		return err
	}

	dsdb.Lock()
	cerr := dsdb.datastorer.connect()
	dsdb.Unlock()
	if cerr != nil {
		return err
	}

	dsdb.RLock()
	defer dsdb.RUnlock()

	return operation()
}

// Close closes the underlying datastore client
func (dsdb *DatastoreDB) Close() (err error) {
	return dsdb.datastorer.Close()
}
