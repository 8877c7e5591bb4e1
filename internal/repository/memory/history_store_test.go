package memory

import (
	"context"
	"testing"
	"time"

	"ats-assistant-be/pkg/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore(0)

	_, err := s.Get(ctx, "chat:u1")
	assert.ErrorIs(t, err, assistant.ErrHistoryNotFound)

	blob := []byte(`[{"id":"1"}]`)
	require.NoError(t, s.Put(ctx, "chat:u1", blob))
	blob[0] = 'X'

	got, err := s.Get(ctx, "chat:u1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got), "stored copy is isolated from the caller")

	require.NoError(t, s.Clear(ctx, "chat:u1"))
	_, err = s.Get(ctx, "chat:u1")
	assert.ErrorIs(t, err, assistant.ErrHistoryNotFound)
}

func TestHistoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore(20 * time.Millisecond)

	require.NoError(t, s.Put(ctx, "search:u1", []byte(`[]`)))
	time.Sleep(40 * time.Millisecond)

	_, err := s.Get(ctx, "search:u1")
	assert.ErrorIs(t, err, assistant.ErrHistoryNotFound)
}

func TestHistoryBackedChat(t *testing.T) {
	ctx := context.Background()
	h := assistant.NewChatHistory(NewHistoryStore(0), 2)
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := h.NewSession(ctx, "u1", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	sessions, err := h.Sessions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
