package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"ats-assistant-be/internal/model"
	"ats-assistant-be/pkg/assistant"
	"ats-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both stores need live backends; the tests skip unless the usual env
// variables point at one.

func TestGormHistoryStore(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false, &model.HistoryBlob{})
	require.NoError(t, err)

	exerciseHistoryStore(t, NewGormHistoryStore(db))
}

func TestRedisHistoryStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { rdb.Close() })

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}

	exerciseHistoryStore(t, NewRedisHistoryStore(rdb, 0))
}

func exerciseHistoryStore(t *testing.T, store assistant.HistoryStore) {
	ctx := context.Background()
	key := "test:" + uuid.NewString()
	t.Cleanup(func() { store.Clear(ctx, key) })

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, assistant.ErrHistoryNotFound)

	require.NoError(t, store.Put(ctx, key, []byte(`{"v":1}`)))
	require.NoError(t, store.Put(ctx, key, []byte(`{"v":2}`)))

	blob, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(blob))

	require.NoError(t, store.Clear(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, assistant.ErrHistoryNotFound)

	// Through the chat history manager.
	chats := assistant.NewChatHistory(store, 2)
	owner := "owner-" + uuid.NewString()
	t.Cleanup(func() { chats.Clear(ctx, owner) })

	session, err := chats.NewSession(ctx, owner, time.Now())
	require.NoError(t, err)

	got, err := chats.Session(ctx, owner, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}
