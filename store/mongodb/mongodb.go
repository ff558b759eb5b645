// Package mongodb provides an implementation of github.com/alexandre-normand/starterbot/store's SiloStringStorer
// interface backed by MongoDB. Each silo maps to a collection of the database named in the connection string
// (or the default database name when the connection string doesn't name one)
package mongodb

import (
	"context"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"time"
)

const (
	connectTimeout = 10 * time.Second
)

// MongoDB holds a mongo client and the database silos are stored in
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

// entry is the document stored for every key of a silo
type entry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// New connects to the mongo deployment at uri and validates connectivity with a ping
func New(uri string, defaultDatabase string) (mdb *MongoDB, err error) {
	dbName, err := databaseName(uri, defaultDatabase)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb")
	}

	if err = client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongodb")
	}

	return &MongoDB{client: client, database: client.Database(dbName)}, nil
}

// databaseName returns the database named in the connection string or defaultDatabase if none is named
func databaseName(uri string, defaultDatabase string) (name string, err error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return "", errors.Wrap(err, "invalid mongodb connection string")
	}

	if cs.Database != "" {
		return cs.Database, nil
	}

	return defaultDatabase, nil
}

// GetSiloString returns the value associated to the key in the silo's collection. If the
// value is not found, store.ErrNotFound is returned
func (mdb *MongoDB) GetSiloString(silo string, key string) (value string, err error) {
	var e entry
	err = mdb.database.Collection(silo).FindOne(context.Background(), bson.M{"_id": key}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return "", store.ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return e.Value, nil
}

// PutSiloString upserts the key/value in the silo's collection
func (mdb *MongoDB) PutSiloString(silo string, key string, value string) (err error) {
	_, err = mdb.database.Collection(silo).UpdateOne(context.Background(),
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true))

	return err
}

// ScanSilo returns all key/values of the silo's collection
func (mdb *MongoDB) ScanSilo(silo string) (entries map[string]string, err error) {
	ctx := context.Background()

	cursor, err := mdb.database.Collection(silo).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var docs []entry
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries = make(map[string]string, len(docs))
	for _, d := range docs {
		entries[d.Key] = d.Value
	}

	return entries, nil
}

// Close disconnects the mongo client
func (mdb *MongoDB) Close() (err error) {
	return mdb.client.Disconnect(context.Background())
}
