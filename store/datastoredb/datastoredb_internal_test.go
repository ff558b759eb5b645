package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"fmt"
	"github.com/alexandre-normand/starterbot/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

// mock of the datastore
type mockDatastore struct {
	mock.Mock
	returnNoErrOnRepeatedKey bool   // If set, the mock will ignore any expected error set on a repeated invocation with the same key. Note that the key tracking is shared accross all functions
	lastKey                  string // Used to keep track of the last key in order to honor the returnNoErrOnRepeatedKey and *not* return an error on the second call with the same key
}

// connect mocks a datastore connect call
func (md *mockDatastore) connect() (err error) {
	args := md.Called()

	return args.Error(0)
}

// Close mocks a datastore Close
func (md *mockDatastore) Close() (err error) {
	args := md.Called()
	return args.Error(0)
}

// Get mocks a Get datastore call
func (md *mockDatastore) Get(c context.Context, k *datastore.Key, dest interface{}) (err error) {
	args := md.Called(c, k, dest)

	if e, ok := dest.(*EntryValue); ok {
		e.Value = fmt.Sprintf("val:%s", k.Name)
	}

	if md.lastKey == k.Name && md.returnNoErrOnRepeatedKey {
		return nil
	}

	md.lastKey = k.Name
	return args.Error(0)
}

// GetAll mocks a GetAll datastore call. The base was inspired by the generated mock implementation via https://github.com/vektra/mockery
// to get an idea of how to support returner functions
func (md *mockDatastore) GetAll(c context.Context, query *datastore.Query, dest interface{}) (keys []*datastore.Key, err error) {
	ret := md.Called(c, query, dest)

	var r0 []*datastore.Key
	if rf, ok := ret.Get(0).(func(context.Context, *datastore.Query, interface{}) []*datastore.Key); ok {
		r0 = rf(c, query, dest)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*datastore.Key)
		}
	}

	if md.lastKey == "getAll" && md.returnNoErrOnRepeatedKey {
		return r0, nil
	}

	md.lastKey = "getAll"
	return r0, ret.Error(1)
}

// Put mocks a Put datastore call
func (md *mockDatastore) Put(c context.Context, k *datastore.Key, v interface{}) (key *datastore.Key, err error) {
	args := md.Called(c, k, v)

	if k, ok := args.Get(0).(*datastore.Key); ok {
		key = k
	}

	if md.lastKey == k.Name && md.returnNoErrOnRepeatedKey {
		return key, nil
	}

	md.lastKey = k.Name
	return key, args.Error(1)
}

const (
	testNamespace = "chickadee"
)

var (
	connectivityKey = datastore.NameKey(testNamespace+".connectivity", "testConnectivity", nil)
)

func TestErrorOnCreationConnect(t *testing.T) {
	mock := mockDatastore{}
	mock.On("connect").Return(fmt.Errorf("invalid credentials"))

	_, err := newWithDatastorer(testNamespace, &mock)
	if assert.Error(t, err) {
		assert.Equal(t, "invalid credentials", err.Error())
	}
}

func TestErrorOnDBTestOnCreation(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil).Twice()
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(fmt.Errorf("invalid credentials")).Twice()
	mockDS.On("Close").Return(nil)

	_, err := newWithDatastorer(testNamespace, &mockDS)
	if assert.Error(t, err) {
		assert.Equal(t, "invalid credentials", err.Error())
	}
}

func TestExpectedErrNoEntityOnCreationDBTest(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil)
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	assert.NotNil(t, dsdb)
}

func TestSuccessfulGetSiloString(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil)
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	mockDS.On("Get", mock.Anything, datastore.NameKey(testNamespace+".users", "renée", nil), mock.Anything).Return(nil)

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		v, err := dsdb.GetSiloString(store.UsersSilo, "renée")
		assert.NoError(t, err)
		assert.Equal(t, "val:renée", v)
	}
}

func TestGetSiloStringNotFound(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil).Once()
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	mockDS.On("Get", mock.Anything, datastore.NameKey(testNamespace+".channels", "C1", nil), mock.Anything).Return(datastore.ErrNoSuchEntity).Once()

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		_, err := dsdb.GetSiloString(store.ChannelsSilo, "C1")
		assert.Equal(t, store.ErrNotFound, err)
	}
}

func TestReconnectOnGetFailure(t *testing.T) {
	// Very importantly, we set up our mock to *not* return an error on repeated calls for the same key
	mockDS := mockDatastore{returnNoErrOnRepeatedKey: true}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil).Twice()
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	mockDS.On("Get", mock.Anything, datastore.NameKey(testNamespace+".users", "renée", nil), mock.Anything).Return(fmt.Errorf("rpc error: code = Unauthenticated"))

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		v, err := dsdb.GetSiloString(store.UsersSilo, "renée")
		assert.NoError(t, err)
		assert.Equal(t, "val:renée", v)
	}
}

func TestFailureToGetAfterReconnectOnFailure(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil).Twice()
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	mockDS.On("Get", mock.Anything, datastore.NameKey(testNamespace+".users", "renée", nil), mock.Anything).Return(fmt.Errorf("rpc error: code = Unauthenticated")).Twice()

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		_, err := dsdb.GetSiloString(store.UsersSilo, "renée")
		if assert.Error(t, err) {
			assert.Equal(t, "rpc error: code = Unauthenticated", err.Error())
		}
	}
}

func TestSuccessfulPutSiloString(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	k := datastore.NameKey(testNamespace+".channels", "C1", nil)
	mockDS.On("connect").Return(nil)
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	mockDS.On("Put", mock.Anything, k, &EntryValue{Value: "general"}).Return(k, nil)

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		err := dsdb.PutSiloString(store.ChannelsSilo, "C1", "general")
		assert.NoError(t, err)
	}
}

func TestSuccessfulScanSilo(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil)
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	// GetAll writes to the slice pointer it receives so the mock relies on a returner function to
	// fill it in along with the keys it returns
	mockDS.On("GetAll", mock.Anything, datastore.NewQuery(testNamespace+".teams"), mock.Anything).Return(func(c context.Context, query *datastore.Query, dest interface{}) (keys []*datastore.Key) {
		if vals, ok := dest.(*[]*EntryValue); ok {
			(*vals) = []*EntryValue{{Value: "bird"}}
		}

		return []*datastore.Key{datastore.NameKey(testNamespace+".teams", "T1", nil)}
	}, nil)

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		v, err := dsdb.ScanSilo(store.TeamsSilo)
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"T1": "bird"}, v)
	}
}

func TestClose(t *testing.T) {
	mockDS := mockDatastore{}
	defer mockDS.AssertExpectations(t)

	mockDS.On("connect").Return(nil)
	mockDS.On("Get", mock.Anything, connectivityKey, mock.Anything).Return(datastore.ErrNoSuchEntity)
	mockDS.On("Close").Return(nil)

	dsdb, err := newWithDatastorer(testNamespace, &mockDS)
	assert.NoError(t, err)
	if assert.NotNil(t, dsdb) {
		assert.NoError(t, dsdb.Close())
	}
}
