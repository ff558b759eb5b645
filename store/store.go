// Package store defines the storage interfaces used by starterbot to keep
// metadata records (users, channels and teams) and provides a leveldb-backed
// implementation of them. Other backends live in sub-packages.
package store

import (
	"github.com/pkg/errors"
	"io"
)

// Silo names used by starterbot
const (
	UsersSilo    = "users"
	ChannelsSilo = "channels"
	TeamsSilo    = "teams"
)

// ErrNotFound is returned by storers when no value has ever been saved for a key.
// Every storer implementation translates its engine's not-found error to this one
var ErrNotFound = errors.New("not found")

// SiloStringGetter is implemented by any value that has the GetSiloString method
type SiloStringGetter interface {
	// GetSiloString returns the value associated to a key in a silo. If no value
	// is found, ErrNotFound is returned
	GetSiloString(silo string, key string) (value string, err error)
}

// SiloStringPutter is implemented by any value that has the PutSiloString method
type SiloStringPutter interface {
	PutSiloString(silo string, key string, value string) (err error)
}

// SiloStringScanner is implemented by any value that has the ScanSilo method
type SiloStringScanner interface {
	ScanSilo(silo string) (entries map[string]string, err error)
}

// SiloStringStorer is implemented by any value that has all of the SiloStringGetter,
// SiloStringPutter, SiloStringScanner and io.Closer methods. Implementations must be
// safe for concurrent use
type SiloStringStorer interface {
	SiloStringGetter
	SiloStringPutter
	SiloStringScanner
	io.Closer
}

// IsNotFound returns true if err is (or wraps) ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
