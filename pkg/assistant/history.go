package assistant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"ats-assistant-be/pkg/jsonx"

	"github.com/google/uuid"
)

const (
	// DefaultSessionLimit caps the stored chat sessions per owner.
	DefaultSessionLimit = 50
	// DefaultSearchLimit caps the stored search-history entries per owner.
	DefaultSearchLimit = 20

	sessionTitleLength = 40
)

var (
	ErrHistoryNotFound = errors.New("history not found")
	ErrSessionNotFound = errors.New("chat session not found")
)

// HistoryStore persists opaque history blobs by key. Get returns
// ErrHistoryNotFound for a key that was never written or was cleared.
type HistoryStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, blob []byte) error
	Clear(ctx context.Context, key string) error
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable chat line.
type Message struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Sender      Sender       `json:"sender"`
	Timestamp   time.Time    `json:"timestamp"`
	Navigate    string       `json:"navigate,omitempty"`
	EntityLabel string       `json:"entityLabel,omitempty"`
	Items       []ResultItem `json:"items,omitempty"`
}

func newMessageID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func UserMessage(text string, at time.Time) Message {
	return Message{ID: newMessageID(), Text: text, Sender: SenderUser, Timestamp: at}
}

// BotMessage records a dispatcher Response as a chat line.
func BotMessage(resp Response, at time.Time) Message {
	return Message{
		ID:          newMessageID(),
		Text:        resp.Message,
		Sender:      SenderBot,
		Timestamp:   at,
		Navigate:    resp.Path,
		EntityLabel: resp.EntityLabel,
		Items:       resp.Items,
	}
}

type ChatSession struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Messages          []Message `json:"messages"`
	HasUserInteracted bool      `json:"hasUserInteracted"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ChatHistory keeps each owner's most recent sessions. Sessions past the
// limit are evicted oldest first; every mutation rewrites the owner's blob.
type ChatHistory struct {
	store HistoryStore
	limit int
	mu    sync.Mutex
}

func NewChatHistory(store HistoryStore, limit int) *ChatHistory {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	return &ChatHistory{store: store, limit: limit}
}

func chatKey(owner string) string {
	return "chat:" + owner
}

// load returns sessions in creation order.
func (h *ChatHistory) load(ctx context.Context, owner string) ([]ChatSession, error) {
	blob, err := h.store.Get(ctx, chatKey(owner))
	if errors.Is(err, ErrHistoryNotFound) {
		return []ChatSession{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	var sessions []ChatSession
	if err := jsonx.Unmarshal(blob, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}
	return sessions, nil
}

func (h *ChatHistory) save(ctx context.Context, owner string, sessions []ChatSession) error {
	if over := len(sessions) - h.limit; over > 0 {
		sessions = sessions[over:]
	}
	blob, err := jsonx.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}
	if err := h.store.Put(ctx, chatKey(owner), blob); err != nil {
		return fmt.Errorf("failed to save chat history: %w", err)
	}
	return nil
}

// Sessions lists the owner's sessions, most recently updated first.
func (h *ChatHistory) Sessions(ctx context.Context, owner string) ([]ChatSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	slices.Reverse(sessions)
	slices.SortStableFunc(sessions, func(a, b ChatSession) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return sessions, nil
}

func (h *ChatHistory) Session(ctx context.Context, owner, id string) (*ChatSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, ErrSessionNotFound
}

// NewSession starts a session seeded with the greeting and evicts the
// oldest session when the owner is over the limit.
func (h *ChatHistory) NewSession(ctx context.Context, owner string, now time.Time) (*ChatSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	session := ChatSession{
		ID:        uuid.NewString(),
		Title:     "New chat",
		Messages:  []Message{BotMessage(Text(greetingText), now)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	sessions = append(sessions, session)
	if err := h.save(ctx, owner, sessions); err != nil {
		return nil, err
	}
	return &session, nil
}

// Append adds messages to a session. The first user message names the
// session.
func (h *ChatHistory) Append(ctx context.Context, owner, id string, msgs ...Message) (*ChatSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(sessions, func(s ChatSession) bool { return s.ID == id })
	if idx < 0 {
		return nil, ErrSessionNotFound
	}

	s := &sessions[idx]
	for _, m := range msgs {
		if m.Sender == SenderUser && !s.HasUserInteracted {
			s.HasUserInteracted = true
			s.Title = sessionTitle(m.Text)
		}
		s.Messages = append(s.Messages, m)
		if m.Timestamp.After(s.UpdatedAt) {
			s.UpdatedAt = m.Timestamp
		}
	}

	if err := h.save(ctx, owner, sessions); err != nil {
		return nil, err
	}
	out := *s
	return &out, nil
}

func (h *ChatHistory) Delete(ctx context.Context, owner, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.load(ctx, owner)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(sessions, func(s ChatSession) bool { return s.ID == id })
	if len(kept) == len(sessions) {
		return ErrSessionNotFound
	}
	return h.save(ctx, owner, kept)
}

// Clear drops every session of the owner.
func (h *ChatHistory) Clear(ctx context.Context, owner string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Clear(ctx, chatKey(owner)); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

func sessionTitle(text string) string {
	t := strings.Join(strings.Fields(text), " ")
	runes := []rune(t)
	if len(runes) <= sessionTitleLength {
		return t
	}
	return string(runes[:sessionTitleLength-3]) + "..."
}
