package starstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save("mission-a", []byte{1, 2, 3}))

	got, err := s.Load("mission-a")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwritesExisting(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save("mission-a", []byte{1}))
	require.NoError(t, s.Save("mission-a", []byte{9, 9}))

	got, err := s.Load("mission-a")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, got)
}

func TestNamesListsInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save("first", []byte{1}))
	require.NoError(t, s.Save("second", []byte{2}))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, names)
}

func TestDeleteRemovesSnapshot(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save("mission-a", []byte{1}))
	require.NoError(t, s.Delete("mission-a"))

	_, err := s.Load("mission-a")
	assert.ErrorIs(t, err, ErrNotFound)
}
