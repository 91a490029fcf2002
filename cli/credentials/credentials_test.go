package credentials

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnifyEM/storefront/common/interfaces"
	"github.com/UnifyEM/storefront/common/null"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()

	_, ok := s.Get()
	assert.False(t, ok)

	assert.ErrorIs(t, s.SetAccess("A1"), ErrNoRefreshToken)
	assert.ErrorIs(t, s.Set(interfaces.TokenPair{Access: "A1"}), ErrIncompletePair)

	require.NoError(t, s.Set(interfaces.TokenPair{Access: "A1", Refresh: "R1"}))
	require.NoError(t, s.SetAccess("A2"))

	pair, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, interfaces.TokenPair{Access: "A2", Refresh: "R1"}, pair)

	assert.ErrorIs(t, s.SetAccess(""), ErrIncompletePair)

	require.NoError(t, s.Clear())
	pair, ok = s.Get()
	assert.False(t, ok)
	assert.True(t, pair.Empty())
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	s, err := Open(path, null.Logger())
	require.NoError(t, err)
	require.NoError(t, s.Set(interfaces.TokenPair{Access: "A1", Refresh: "R1"}))
	require.NoError(t, s.SetAccess("A2"))
	s.Close()

	// Simulates a restart
	s, err = Open(path, nil)
	require.NoError(t, err)
	pair, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "A2", pair.Access)
	assert.Equal(t, "R1", pair.Refresh)

	require.NoError(t, s.Clear())
	s.Close()

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestConcurrentWriters(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Set(interfaces.TokenPair{Access: "A0", Refresh: "R"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.SetAccess("A")
			_, _ = s.Get()
		}()
	}
	wg.Wait()

	pair, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, interfaces.TokenPair{Access: "A", Refresh: "R"}, pair)
}
