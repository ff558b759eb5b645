package store

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
	"path/filepath"
)

// siloSeparator separates the silo from the key in the leveldb keyspace
const siloSeparator = "/"

// LevelDB implements the SiloStringStorer interface with a leveldb database stored
// in a directory on the local filesystem. Silos are mapped to key prefixes
type LevelDB struct {
	Name     string
	database *leveldb.DB
}

// NewLevelDB instantiates and opens a new LevelDB instance backed by a leveldb database
// in storagePath/name. If the leveldb database doesn't exist, one is created
func NewLevelDB(name string, storagePath string) (ldb *LevelDB, err error) {
	// Expand '~' as the full home directory path if appropriate
	path, err := homedir.Expand(storagePath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(path, name)
	db, err := leveldb.OpenFile(fullPath, nil)

	if _, ok := err.(*leveldberrors.ErrCorrupted); ok {
		return nil, errors.Wrap(err, fmt.Sprintf("leveldb corrupted. Consider deleting [%s] and restarting if you don't mind losing data", fullPath))
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open file with path [%s]", fullPath))
	}

	return &LevelDB{Name: name, database: db}, nil
}

// Close closes the LevelDB
func (ldb *LevelDB) Close() (err error) {
	return ldb.database.Close()
}

// GetSiloString retrieves the value associated to the key in the given silo. ErrNotFound
// is returned if the key was never put
func (ldb *LevelDB) GetSiloString(silo string, key string) (value string, err error) {
	val, err := ldb.database.Get(siloKey(silo, key), nil)
	if err == leveldb.ErrNotFound {
		return "", ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return string(val), nil
}

// PutSiloString adds or updates a value associated to the key in the given silo
func (ldb *LevelDB) PutSiloString(silo string, key string, value string) (err error) {
	return ldb.database.Put(siloKey(silo, key), []byte(value), nil)
}

// ScanSilo returns the complete set of key/values of a silo
func (ldb *LevelDB) ScanSilo(silo string) (entries map[string]string, err error) {
	prefix := silo + siloSeparator

	entries = map[string]string{}
	iter := ldb.database.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	for iter.Next() {
		key := string(iter.Key()[len(prefix):])
		value := string(iter.Value())
		entries[key] = value
	}

	iter.Release()
	err = iter.Error()

	return entries, err
}

// siloKey returns the leveldb key for a silo's key
func siloKey(silo string, key string) []byte {
	return []byte(silo + siloSeparator + key)
}
