package ollama

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ats-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"model":"llama3"`)
		assert.Contains(t, string(body), `"stream":false`)
		assert.Contains(t, string(body), `"num_predict":64`)
		_, _ = io.WriteString(w, `{"model":"llama3","message":{"role":"assistant","content":"Hello!"},"done":true}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	reply, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)
}

func TestChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "missing").Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "status 404")
}
