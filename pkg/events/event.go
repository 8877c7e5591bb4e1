package events

import (
	"context"
	"time"
)

const (
	// TypeMessageDispatched fires after the assistant answered a message.
	TypeMessageDispatched = "assistant.message_dispatched"
	// TypeHistoryCleared fires when an owner wipes chat or search history.
	TypeHistoryCleared = "assistant.history_cleared"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Publisher ships events to a bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func MessageDispatched(owner, sessionID, rule, kind string, items int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeMessageDispatched,
		Data: map[string]interface{}{
			"owner":      owner,
			"session_id": sessionID,
			"rule":       rule,
			"kind":       kind,
			"items":      items,
		},
		OccurredAt: at,
	}
}

// HistoryCleared names what was cleared: "chat", "search" or a session id.
func HistoryCleared(owner, scope string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeHistoryCleared,
		Data: map[string]interface{}{
			"owner": owner,
			"scope": scope,
		},
		OccurredAt: at,
	}
}
