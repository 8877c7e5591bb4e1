package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ats-assistant-be/internal/dto"
	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/internal/repository/memory"
	"ats-assistant-be/pkg/assistant"
	"ats-assistant-be/pkg/ats"
	"ats-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

const jobsJSON = `[
	{"id":1,"jobName":"Java Developer","status":"ACTIVE","skillsname":"Java,Spring"},
	{"id":2,"jobName":"Old Java Role","status":"CLOSED","skillsname":"Java"}
]`

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) all() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func newTestService(t *testing.T, handler http.HandlerFunc) (IChatbotService, *recordingPublisher) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := ats.NewRESTClient(srv.URL, "", time.Second, nil)
	dispatcher := assistant.NewDispatcher(assistant.Deps{
		Directories: ats.Directories{
			Jobs:         client,
			Candidates:   client,
			Applications: client,
			Interviews:   client,
			Clients:      client,
		},
		Chat:   client,
		Now:    func() time.Time { return fixedNow },
		Logger: zap.NewNop(),
	})

	store := memory.NewHistoryStore(0)
	pub := &recordingPublisher{}
	svc := NewChatbotService(
		dispatcher,
		assistant.NewChatHistory(store, 0),
		assistant.NewSearchHistory(store, 0),
		pub,
		logger.FromZap(zap.NewNop()),
		func() time.Time { return fixedNow },
	)
	return svc, pub
}

func serveJobs(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/jobs" {
		_, _ = io.WriteString(w, jobsJSON)
		return
	}
	http.NotFound(w, r)
}

func TestSendMessageCreatesSession(t *testing.T) {
	svc, pub := newTestService(t, serveJobs)
	ctx := context.Background()

	res, err := svc.SendMessage(ctx, "u1", "", &dto.SendMessageRequest{Text: "dashboard"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.SessionId)
	assert.Equal(t, "dashboard", res.SessionTitle)
	assert.Equal(t, assistant.RuleMenuNavigation, res.Rule)
	assert.Equal(t, "user", res.Sent.Sender)
	assert.Equal(t, "/dashboard", res.Reply.Navigate)

	session, err := svc.GetSession(ctx, "u1", res.SessionId)
	require.NoError(t, err)
	require.Len(t, session.Messages, 3, "greeting, user line, bot line")
	assert.True(t, session.HasUserInteracted)

	history, err := svc.GetSearchHistory(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history, "navigation is not a search")

	published := pub.all()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeMessageDispatched, published[0].EventType())
	assert.Equal(t, assistant.RuleMenuNavigation, published[0].Payload()["rule"])
}

func TestSendMessageRecordsSearchAndForwardsToken(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		serveJobs(w, r)
	})
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "u1")
	require.NoError(t, err)

	res, err := svc.SendMessage(ctx, "u1", "user-token", &dto.SendMessageRequest{SessionId: session.Id, Text: " java jobs "})
	require.NoError(t, err)

	assert.Equal(t, session.Id, res.SessionId)
	assert.Equal(t, assistant.RuleJobKeywordSearch, res.Rule)
	require.Len(t, res.Reply.Items, 1)
	assert.Equal(t, "Java Developer", res.Reply.Items[0].Name)

	history, err := svc.GetSearchHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "java jobs", history[0].Query)

	require.NoError(t, svc.ClearSearchHistory(ctx, "u1"))
	history, err = svc.GetSearchHistory(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSendMessageRejectsConcurrentDispatch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		serveJobs(w, r)
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.SendMessage(ctx, "u1", "", &dto.SendMessageRequest{Text: "java jobs"})
		done <- err
	}()

	<-started
	_, err := svc.SendMessage(ctx, "u1", "", &dto.SendMessageRequest{Text: "dashboard"})
	assert.ErrorIs(t, err, ErrDispatchInProgress)

	_, err = svc.SendMessage(ctx, "u2", "", &dto.SendMessageRequest{Text: "dashboard"})
	assert.NoError(t, err, "other owners are not blocked")

	close(release)
	require.NoError(t, <-done)

	_, err = svc.SendMessage(ctx, "u1", "", &dto.SendMessageRequest{Text: "dashboard"})
	assert.NoError(t, err, "flag is released after the answer")
}

func TestSendMessageErrors(t *testing.T) {
	svc, _ := newTestService(t, serveJobs)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "u1", "", &dto.SendMessageRequest{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(ctx, "u1", "", &dto.SendMessageRequest{SessionId: "missing", Text: "hi"})
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	svc, pub := newTestService(t, serveJobs)
	ctx := context.Background()

	a, err := svc.CreateSession(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, a.Messages, 1)
	assert.Equal(t, "bot", a.Messages[0].Sender)

	_, err = svc.CreateSession(ctx, "u1")
	require.NoError(t, err)

	all, err := svc.GetAllSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteSession(ctx, "u1", a.Id))
	assert.ErrorIs(t, svc.DeleteSession(ctx, "u1", a.Id), assistant.ErrSessionNotFound)

	require.NoError(t, svc.ClearSessions(ctx, "u1"))
	all, err = svc.GetAllSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, all)

	published := pub.all()
	require.Len(t, published, 2)
	assert.Equal(t, events.TypeHistoryCleared, published[1].EventType())
	assert.Equal(t, "chat", published[1].Payload()["scope"])
}
