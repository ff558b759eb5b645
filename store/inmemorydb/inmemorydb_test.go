package inmemorydb_test

import (
	"fmt"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/alexandre-normand/starterbot/store/inmemorydb"
	"github.com/alexandre-normand/starterbot/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewWithInvalidSize(t *testing.T) {
	ms := &mocks.Storer{}

	_, err := inmemorydb.New(ms, 0)
	assert.Error(t, err)
}

func TestGetLoadsOnceFromPersistentStorer(t *testing.T) {
	ms := &mocks.Storer{}
	defer ms.AssertExpectations(t)
	ms.On("GetSiloString", store.UsersSilo, "U1").Return("value1", nil).Once()

	imdb, err := inmemorydb.New(ms, 10)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := imdb.GetSiloString(store.UsersSilo, "U1")
		assert.NoError(t, err)
		assert.Equal(t, "value1", v)
	}
}

func TestGetNotFoundIsNotCached(t *testing.T) {
	ms := &mocks.Storer{}
	defer ms.AssertExpectations(t)
	ms.On("GetSiloString", store.UsersSilo, "U1").Return("", store.ErrNotFound).Twice()

	imdb, err := inmemorydb.New(ms, 10)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := imdb.GetSiloString(store.UsersSilo, "U1")
		assert.True(t, store.IsNotFound(err))
	}
}

func TestSilosAreIsolated(t *testing.T) {
	ms := &mocks.Storer{}
	defer ms.AssertExpectations(t)
	ms.On("PutSiloString", store.UsersSilo, "X1", "user").Return(nil)
	ms.On("GetSiloString", store.ChannelsSilo, "X1").Return("", store.ErrNotFound)

	imdb, err := inmemorydb.New(ms, 10)
	require.NoError(t, err)

	require.NoError(t, imdb.PutSiloString(store.UsersSilo, "X1", "user"))

	v, err := imdb.GetSiloString(store.UsersSilo, "X1")
	assert.NoError(t, err)
	assert.Equal(t, "user", v)

	_, err = imdb.GetSiloString(store.ChannelsSilo, "X1")
	assert.True(t, store.IsNotFound(err))
}

func TestPutErrorIsNotCached(t *testing.T) {
	ms := &mocks.Storer{}
	defer ms.AssertExpectations(t)
	ms.On("PutSiloString", store.UsersSilo, "U1", "bird").Return(fmt.Errorf("error with persistent db"))
	ms.On("GetSiloString", store.UsersSilo, "U1").Return("", store.ErrNotFound)

	imdb, err := inmemorydb.New(ms, 10)
	require.NoError(t, err)

	err = imdb.PutSiloString(store.UsersSilo, "U1", "bird")
	assert.EqualError(t, err, "error with persistent db")

	_, err = imdb.GetSiloString(store.UsersSilo, "U1")
	assert.True(t, store.IsNotFound(err))
}

func TestScanDelegatesToPersistentStorer(t *testing.T) {
	ms := &mocks.Storer{}
	defer ms.AssertExpectations(t)
	ms.On("ScanSilo", store.TeamsSilo).Return(map[string]string{"T1": "team"}, nil)

	imdb, err := inmemorydb.New(ms, 10)
	require.NoError(t, err)

	entries, err := imdb.ScanSilo(store.TeamsSilo)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"T1": "team"}, entries)
}

func TestClose(t *testing.T) {
	ms := &mocks.Storer{}
	defer ms.AssertExpectations(t)
	ms.On("Close").Return(fmt.Errorf("already closed"))

	imdb, err := inmemorydb.New(ms, 10)
	require.NoError(t, err)

	assert.EqualError(t, imdb.Close(), "already closed")
}
