package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatHistoryEvictsOldestSession(t *testing.T) {
	ctx := context.Background()
	h := NewChatHistory(newMapStore(), 0)

	var ids []string
	for i := 0; i < DefaultSessionLimit+2; i++ {
		s, err := h.NewSession(ctx, "u1", testNow.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	sessions, err := h.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, DefaultSessionLimit)
	assert.Equal(t, ids[len(ids)-1], sessions[0].ID, "most recent first")

	_, err = h.Session(ctx, "u1", ids[0])
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = h.Session(ctx, "u1", ids[1])
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = h.Session(ctx, "u1", ids[2])
	assert.NoError(t, err)
}

func TestChatHistoryAppend(t *testing.T) {
	ctx := context.Background()
	h := NewChatHistory(newMapStore(), 5)

	s, err := h.NewSession(ctx, "u1", testNow)
	require.NoError(t, err)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, SenderBot, s.Messages[0].Sender)
	assert.False(t, s.HasUserInteracted)

	later := testNow.Add(time.Minute)
	resp := Navigate("Opening Dashboard...", "/dashboard", "Dashboard")
	updated, err := h.Append(ctx, "u1", s.ID, UserMessage("dashboard", later), BotMessage(resp, later))
	require.NoError(t, err)

	assert.True(t, updated.HasUserInteracted)
	assert.Equal(t, "dashboard", updated.Title)
	assert.Equal(t, later, updated.UpdatedAt)
	require.Len(t, updated.Messages, 3)
	assert.Equal(t, "/dashboard", updated.Messages[2].Navigate)

	stored, err := h.Session(ctx, "u1", s.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 3)

	_, err = h.Append(ctx, "u1", "missing", UserMessage("x", later))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestChatHistoryDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	h := NewChatHistory(newMapStore(), 5)

	a, _ := h.NewSession(ctx, "u1", testNow)
	b, _ := h.NewSession(ctx, "u1", testNow)
	_, _ = h.NewSession(ctx, "u2", testNow)

	require.NoError(t, h.Delete(ctx, "u1", a.ID))
	assert.ErrorIs(t, h.Delete(ctx, "u1", a.ID), ErrSessionNotFound)

	sessions, err := h.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, b.ID, sessions[0].ID)

	require.NoError(t, h.Clear(ctx, "u1"))
	sessions, err = h.Sessions(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, sessions)

	others, err := h.Sessions(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestChatHistoryStoreFailure(t *testing.T) {
	store := newMapStore()
	store.err = errors.New("redis down")
	h := NewChatHistory(store, 5)

	_, err := h.NewSession(context.Background(), "u1", testNow)
	assert.ErrorContains(t, err, "redis down")
}

func TestSearchHistoryDedupesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	h := NewSearchHistory(newMapStore(), 0)

	for _, q := range []string{"Java", "python", "  ", "JAVA"} {
		_, err := h.Record(ctx, "u1", q, testNow)
		require.NoError(t, err)
	}

	entries, err := h.Entries(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "JAVA", entries[0].Query)
	assert.Equal(t, "python", entries[1].Query)
}

func TestSearchHistoryCap(t *testing.T) {
	ctx := context.Background()
	h := NewSearchHistory(newMapStore(), 0)

	for i := 0; i < 25; i++ {
		_, err := h.Record(ctx, "u1", fmt.Sprintf("q%d", i), testNow)
		require.NoError(t, err)
	}

	entries, err := h.Entries(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, DefaultSearchLimit)
	assert.Equal(t, "q24", entries[0].Query)
	assert.Equal(t, "q5", entries[len(entries)-1].Query)

	require.NoError(t, h.Clear(ctx, "u1"))
	entries, err = h.Entries(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
