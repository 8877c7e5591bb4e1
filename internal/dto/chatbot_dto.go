package dto

import (
	"time"

	"ats-assistant-be/pkg/assistant"
)

type SessionSummaryResponse struct {
	Id                string    `json:"id"`
	Title             string    `json:"title"`
	HasUserInteracted bool      `json:"has_user_interacted"`
	MessageCount      int       `json:"message_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type SessionResponse struct {
	Id                string             `json:"id"`
	Title             string             `json:"title"`
	HasUserInteracted bool               `json:"has_user_interacted"`
	Messages          []*MessageResponse `json:"messages"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type MessageResponse struct {
	Id          string                 `json:"id"`
	Text        string                 `json:"text"`
	Sender      string                 `json:"sender"`
	Navigate    string                 `json:"navigate,omitempty"`
	EntityLabel string                 `json:"entity_label,omitempty"`
	Items       []assistant.ResultItem `json:"items,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"omitempty,max=64"`
	Text      string `json:"text" validate:"required,max=2000"`
}

type SendMessageResponse struct {
	SessionId    string           `json:"session_id"`
	SessionTitle string           `json:"title"`
	Rule         string           `json:"rule"`
	Sent         *MessageResponse `json:"sent"`
	Reply        *MessageResponse `json:"reply"`
}

type SearchEntryResponse struct {
	Id        string    `json:"id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// WsInbound is what a WebSocket client sends.
type WsInbound struct {
	SessionId string `json:"session_id"`
	Text      string `json:"text"`
}

// WsFrame types.
const (
	WsFrameTyping  = "typing"
	WsFrameMessage = "message"
	WsFrameError   = "error"
)

// WsFrame is what the server streams back: growing "typing" prefixes of the
// reply, then the final "message", or a single "error".
type WsFrame struct {
	Type    string               `json:"type"`
	Text    string               `json:"text,omitempty"`
	Message *SendMessageResponse `json:"message,omitempty"`
}
