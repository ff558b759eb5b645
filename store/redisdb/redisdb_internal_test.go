package redisdb

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewWithInvalidURL(t *testing.T) {
	_, err := New("starterbot", "http://localhost:6379")

	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "invalid redis url")
	}
}

func TestSiloKey(t *testing.T) {
	rdb := &RedisDB{namespace: "starterbot"}

	assert.Equal(t, "starterbot:users", rdb.siloKey("users"))
	assert.Equal(t, "starterbot:channels", rdb.siloKey("channels"))
}
