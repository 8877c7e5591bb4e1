package factory

import (
	"fmt"

	"ats-assistant-be/pkg/ats"
	"ats-assistant-be/pkg/llm"
	"ats-assistant-be/pkg/llm/ollama"
)

const (
	BackendATS = "ats"
	BackendLLM = "llm"
)

func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// NewChatBackend picks the fallback chat backend: the ATS generic chatbot
// endpoint, or an LLM provider wrapped as a chat backend.
func NewChatBackend(backend string, atsChat ats.ChatBackend, providerType, modelName, baseURL string) (ats.ChatBackend, error) {
	switch backend {
	case "", BackendATS:
		return atsChat, nil
	case BackendLLM, "ollama":
		if backend == "ollama" {
			providerType = "ollama"
		}
		provider, err := NewLLMProvider(providerType, modelName, baseURL)
		if err != nil {
			return nil, err
		}
		return llm.NewChatBackend(provider), nil
	default:
		return nil, fmt.Errorf("unsupported chat backend: %s", backend)
	}
}
