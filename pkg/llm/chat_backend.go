package llm

import (
	"context"
	"strings"

	"ats-assistant-be/pkg/ats"
)

// DefaultSystemPrompt keeps fallback answers short and on the recruiting domain.
const DefaultSystemPrompt = "You are the assistant of an applicant tracking system. " +
	"Answer recruiting questions in two or three sentences. " +
	"If the question needs live candidate, job or interview data, tell the user which command to try instead."

// ChatBackend answers unclassified messages with an LLM.
type ChatBackend struct {
	Provider     LLMProvider
	SystemPrompt string
	Options      []Option
}

var _ ats.ChatBackend = &ChatBackend{}

func NewChatBackend(provider LLMProvider) *ChatBackend {
	return &ChatBackend{
		Provider:     provider,
		SystemPrompt: DefaultSystemPrompt,
		Options:      []Option{WithTemperature(0.3), WithMaxTokens(256)},
	}
}

func (b *ChatBackend) SendMessage(ctx context.Context, text string) (string, error) {
	history := make([]Message, 0, 2)
	if b.SystemPrompt != "" {
		history = append(history, Message{Role: "system", Content: b.SystemPrompt})
	}
	history = append(history, Message{Role: "user", Content: text})

	reply, err := b.Provider.Chat(ctx, history, b.Options...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
