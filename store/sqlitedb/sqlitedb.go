// Package sqlitedb provides an implementation of github.com/alexandre-normand/starterbot/store's SiloStringStorer
// interface backed by a SQLite database file accessed through gorm
package sqlitedb

import (
	"github.com/alexandre-normand/starterbot/store"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is a row of the entries table
type Entry struct {
	Silo  string `gorm:"primaryKey;column:silo"`
	Key   string `gorm:"primaryKey;column:entry_key"`
	Value string `gorm:"column:value"`
}

// SQLiteDB holds the gorm database handle
type SQLiteDB struct {
	db *gorm.DB
}

// New opens (and creates, if needed) the SQLite database at path and migrates the entries table
func New(path string) (sdb *SQLiteDB, err error) {
	fullPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(fullPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database [%s]", fullPath)
	}

	if err = db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate sqlite database [%s]", fullPath)
	}

	return &SQLiteDB{db: db}, nil
}

// GetSiloString returns the value associated to the key in the silo. If the value is not found,
// store.ErrNotFound is returned
func (sdb *SQLiteDB) GetSiloString(silo string, key string) (value string, err error) {
	var e Entry
	err = sdb.db.Where("silo = ? AND entry_key = ?", silo, key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", store.ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return e.Value, nil
}

// PutSiloString adds or updates the key/value in the silo
func (sdb *SQLiteDB) PutSiloString(silo string, key string, value string) (err error) {
	return sdb.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&Entry{Silo: silo, Key: key, Value: value}).Error
}

// ScanSilo returns all key/values of the silo
func (sdb *SQLiteDB) ScanSilo(silo string) (entries map[string]string, err error) {
	var rows []Entry
	if err = sdb.db.Where("silo = ?", silo).Find(&rows).Error; err != nil {
		return nil, err
	}

	entries = make(map[string]string, len(rows))
	for _, r := range rows {
		entries[r.Key] = r.Value
	}

	return entries, nil
}

// Close closes the underlying database connection
func (sdb *SQLiteDB) Close() (err error) {
	sqlDB, err := sdb.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
