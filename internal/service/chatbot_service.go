package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ats-assistant-be/internal/dto"
	"ats-assistant-be/internal/mapper"
	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/pkg/assistant"
	"ats-assistant-be/pkg/ats"
	"ats-assistant-be/pkg/events"
)

var (
	// ErrDispatchInProgress rejects a second message while the owner's
	// previous one is still being answered.
	ErrDispatchInProgress = errors.New("a message is already being processed")
	ErrEmptyMessage       = errors.New("message text is empty")
)

// searchRules are the rules whose messages are worth keeping in the search
// history.
var searchRules = map[string]bool{
	assistant.RuleCandidatesByDate: true,
	assistant.RuleStatusSearch:     true,
	assistant.RuleClientSearch:     true,
	assistant.RuleNameCascade:      true,
	assistant.RuleJobMatching:      true,
	assistant.RuleJobKeywordSearch: true,
	assistant.RuleDomainSummary:    true,
}

type IChatbotService interface {
	CreateSession(ctx context.Context, owner string) (*dto.SessionResponse, error)
	GetAllSessions(ctx context.Context, owner string) ([]*dto.SessionSummaryResponse, error)
	GetSession(ctx context.Context, owner, sessionId string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, owner, sessionId string) error
	ClearSessions(ctx context.Context, owner string) error
	SendMessage(ctx context.Context, owner, token string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetSearchHistory(ctx context.Context, owner string) ([]*dto.SearchEntryResponse, error)
	ClearSearchHistory(ctx context.Context, owner string) error
}

type chatbotService struct {
	dispatcher *assistant.Dispatcher
	chats      *assistant.ChatHistory
	searches   *assistant.SearchHistory
	publisher  events.Publisher
	mapper     *mapper.ChatMapper
	logger     logger.ILogger
	now        func() time.Time

	busy sync.Map // owner -> struct{}
}

// NewChatbotService wires the dispatcher to the history managers. publisher
// may be nil when dispatch events are disabled.
func NewChatbotService(
	dispatcher *assistant.Dispatcher,
	chats *assistant.ChatHistory,
	searches *assistant.SearchHistory,
	publisher events.Publisher,
	log logger.ILogger,
	now func() time.Time,
) IChatbotService {
	if now == nil {
		now = time.Now
	}
	return &chatbotService{
		dispatcher: dispatcher,
		chats:      chats,
		searches:   searches,
		publisher:  publisher,
		mapper:     mapper.NewChatMapper(),
		logger:     log,
		now:        now,
	}
}

func (cs *chatbotService) CreateSession(ctx context.Context, owner string) (*dto.SessionResponse, error) {
	session, err := cs.chats.NewSession(ctx, owner, cs.now())
	if err != nil {
		return nil, err
	}
	return cs.mapper.SessionToResponse(session), nil
}

func (cs *chatbotService) GetAllSessions(ctx context.Context, owner string) ([]*dto.SessionSummaryResponse, error) {
	sessions, err := cs.chats.Sessions(ctx, owner)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.SessionSummaryResponse, len(sessions))
	for i := range sessions {
		res[i] = cs.mapper.SessionToSummary(&sessions[i])
	}
	return res, nil
}

func (cs *chatbotService) GetSession(ctx context.Context, owner, sessionId string) (*dto.SessionResponse, error) {
	session, err := cs.chats.Session(ctx, owner, sessionId)
	if err != nil {
		return nil, err
	}
	return cs.mapper.SessionToResponse(session), nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, owner, sessionId string) error {
	if err := cs.chats.Delete(ctx, owner, sessionId); err != nil {
		return err
	}
	cs.publish(ctx, events.HistoryCleared(owner, sessionId, cs.now()))
	return nil
}

func (cs *chatbotService) ClearSessions(ctx context.Context, owner string) error {
	if err := cs.chats.Clear(ctx, owner); err != nil {
		return err
	}
	cs.publish(ctx, events.HistoryCleared(owner, "chat", cs.now()))
	return nil
}

// SendMessage answers one message inside a session, creating the session
// when none is given. The user and bot lines are stored together once the
// answer exists.
func (cs *chatbotService) SendMessage(ctx context.Context, owner, token string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if _, running := cs.busy.LoadOrStore(owner, struct{}{}); running {
		return nil, ErrDispatchInProgress
	}
	defer cs.busy.Delete(owner)

	sessionId := req.SessionId
	if sessionId == "" {
		session, err := cs.chats.NewSession(ctx, owner, cs.now())
		if err != nil {
			return nil, err
		}
		sessionId = session.ID
	} else if _, err := cs.chats.Session(ctx, owner, sessionId); err != nil {
		return nil, err
	}

	sent := assistant.UserMessage(req.Text, cs.now())

	if token != "" {
		ctx = ats.WithToken(ctx, token)
	}
	rule, resp := cs.dispatcher.Answer(ctx, req.Text)
	reply := assistant.BotMessage(resp, cs.now())

	session, err := cs.chats.Append(ctx, owner, sessionId, sent, reply)
	if err != nil {
		return nil, err
	}

	if searchRules[rule] {
		if _, err := cs.searches.Record(ctx, owner, text, cs.now()); err != nil {
			cs.logger.Warn("CHATBOT", "Failed to record search history", map[string]interface{}{
				"owner": owner,
				"error": err.Error(),
			})
		}
	}

	cs.publish(ctx, events.MessageDispatched(owner, sessionId, rule, string(resp.Kind), len(resp.Items), reply.Timestamp))

	return &dto.SendMessageResponse{
		SessionId:    session.ID,
		SessionTitle: session.Title,
		Rule:         rule,
		Sent:         cs.mapper.MessageToResponse(sent),
		Reply:        cs.mapper.MessageToResponse(reply),
	}, nil
}

func (cs *chatbotService) GetSearchHistory(ctx context.Context, owner string) ([]*dto.SearchEntryResponse, error) {
	entries, err := cs.searches.Entries(ctx, owner)
	if err != nil {
		return nil, err
	}
	return cs.mapper.SearchEntriesToResponse(entries), nil
}

func (cs *chatbotService) ClearSearchHistory(ctx context.Context, owner string) error {
	if err := cs.searches.Clear(ctx, owner); err != nil {
		return err
	}
	cs.publish(ctx, events.HistoryCleared(owner, "search", cs.now()))
	return nil
}

// publish is best effort: a lost event never fails the chat.
func (cs *chatbotService) publish(ctx context.Context, event events.Event) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
