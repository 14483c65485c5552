package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelWrapping(t *testing.T) {
	err := NewNotFound("monster %d", 31)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidRequest(err))
	assert.Contains(t, err.Error(), "monster 31")

	wrapped := Wrap(err, "lookup failed")
	assert.True(t, IsNotFound(wrapped))
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("unknown kind %q", "dragon")
	assert.True(t, IsInvalidRequest(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}
