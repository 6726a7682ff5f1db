package errstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	s := New()
	key := Key{Kind: "CODE", Name: "spin_cube", Part: 0, Index: 0}

	_, ok := s.Get(key)
	assert.False(t, ok)

	s.Set(key, "name 'bpyy' is not defined")
	msg, ok := s.Get(key)
	require.True(t, ok)
	assert.Equal(t, "name 'bpyy' is not defined", msg)

	s.Clear(key)
	_, ok = s.Get(key)
	assert.False(t, ok)
}

func TestKeysDoNotCollideAcrossKinds(t *testing.T) {
	s := New()
	s.Set(Key{Kind: "CODE", Name: "a", Part: 1, Index: 2}, "from code")
	s.Set(Key{Kind: "CHAT", Name: "a", Part: 1, Index: 2}, "from chat")

	msg, ok := s.Get(Key{Kind: "CODE", Name: "a", Part: 1, Index: 2})
	require.True(t, ok)
	assert.Equal(t, "from code", msg)

	msg, ok = s.Get(Key{Kind: "CHAT", Name: "a", Part: 1, Index: 2})
	require.True(t, ok)
	assert.Equal(t, "from chat", msg)
}
