package mapper

import (
	"ats-assistant-be/internal/dto"
	"ats-assistant-be/pkg/assistant"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToSummary(s *assistant.ChatSession) *dto.SessionSummaryResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionSummaryResponse{
		Id:                s.ID,
		Title:             s.Title,
		HasUserInteracted: s.HasUserInteracted,
		MessageCount:      len(s.Messages),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *ChatMapper) SessionToResponse(s *assistant.ChatSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	messages := make([]*dto.MessageResponse, len(s.Messages))
	for i := range s.Messages {
		messages[i] = m.MessageToResponse(s.Messages[i])
	}
	return &dto.SessionResponse{
		Id:                s.ID,
		Title:             s.Title,
		HasUserInteracted: s.HasUserInteracted,
		Messages:          messages,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToResponse(msg assistant.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:          msg.ID,
		Text:        msg.Text,
		Sender:      string(msg.Sender),
		Navigate:    msg.Navigate,
		EntityLabel: msg.EntityLabel,
		Items:       msg.Items,
		CreatedAt:   msg.Timestamp,
	}
}

func (m *ChatMapper) SearchEntriesToResponse(entries []assistant.SearchEntry) []*dto.SearchEntryResponse {
	res := make([]*dto.SearchEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = &dto.SearchEntryResponse{Id: e.ID, Query: e.Query, CreatedAt: e.Timestamp}
	}
	return res
}
