// Package mocks contains a mock of the store package interfaces
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Storer holds a mock implementation of store.SiloStringStorer
type Storer struct {
	mock.Mock
}

// GetSiloString mocks an implementation of GetSiloString
func (ms *Storer) GetSiloString(silo string, key string) (value string, err error) {
	args := ms.Called(silo, key)

	return args.String(0), args.Error(1)
}

// PutSiloString mocks an implementation of PutSiloString
func (ms *Storer) PutSiloString(silo string, key string, value string) (err error) {
	args := ms.Called(silo, key, value)

	return args.Error(0)
}

// ScanSilo mocks an implementation of ScanSilo
func (ms *Storer) ScanSilo(silo string) (entries map[string]string, err error) {
	args := ms.Called(silo)

	if e, ok := args.Get(0).(map[string]string); ok {
		entries = e
	}

	return entries, args.Error(1)
}

// Close mocks an implementation of Close
func (ms *Storer) Close() (err error) {
	args := ms.Called()

	return args.Error(0)
}
