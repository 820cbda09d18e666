package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAndByNumber(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()

	session, err := store.Add(7, KindAudio, "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, session.Number)
	assert.Equal(t, 0, session.Slot)
	assert.Equal(t, KindAudio, session.Kind)
	assert.True(t, session.HasPassword)
	assert.Equal(t, 1, store.Len())

	found, err := store.ByNumber(7)
	require.NoError(t, err)
	assert.Same(t, session, found)

	_, err = store.ByNumber(8)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreAddRejectsOversizedPassword(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()

	_, err := store.Add(0, KindText, strings.Repeat("p", MaxPasswordLength))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Zero(t, store.Len())
}

func TestStoreRemoveFreesSlotForReuse(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()

	for number := 0; number < 3; number++ {
		_, err := store.Add(number, KindText, "")
		require.NoError(t, err)
	}

	require.NoError(t, store.Remove(1))
	assert.Equal(t, 2, store.Len())

	_, err := store.ByNumber(1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The freed slot is the first candidate for the next session.
	session, err := store.Add(9, KindText, "")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Slot)

	assert.ErrorIs(t, store.Remove(1), ErrSessionNotFound)
}

func TestStoreCapacity(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()

	for number := 0; number < MaxSessions; number++ {
		_, err := store.Add(number, KindText, "")
		require.NoError(t, err)
	}
	assert.Equal(t, MaxSessions, store.Len())

	_, err := store.Add(MaxSessions, KindText, "")
	assert.ErrorIs(t, err, ErrStoreFull)

	require.NoError(t, store.Remove(0))
	session, err := store.Add(MaxSessions, KindText, "")
	require.NoError(t, err)
	assert.Equal(t, 0, session.Slot)
}

func TestStoreSessionsSlotOrder(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()

	for _, number := range []int{5, 3, 8} {
		_, err := store.Add(number, KindText, "")
		require.NoError(t, err)
	}
	require.NoError(t, store.Remove(3))

	sessions := store.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, 5, sessions[0].Number)
	assert.Equal(t, 8, sessions[1].Number)
}
