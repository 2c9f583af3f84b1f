package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewSelectsProvider(t *testing.T) {
	p, err := New("openai", "gpt-4o-mini", "sk-test", "")
	if err != nil {
		t.Fatalf("New(openai): %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Name() = %q", p.Name())
	}

	p, err = New("ollama", "llama3.2", "", "")
	if err != nil {
		t.Fatalf("New(ollama): %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("openai", "gpt-4o-mini", "", ""); err == nil {
		t.Error("New(openai) without key did not error")
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	if _, err := New("carrier-pigeon", "", "", ""); err == nil {
		t.Error("unsupported provider did not error")
	}
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("streaming requested")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "The contract expires June 30, 2026."},
			Model:   "llama3.2",
		})
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "llama3.2")
	resp, err := p.Generate(context.Background(), Request{
		System: "You answer questions about contracts.",
		Prompt: "When does the service agreement expire?",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "The contract expires June 30, 2026." {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllama(srv.URL, "missing")
	if _, err := p.Generate(context.Background(), Request{Prompt: "hi"}); err == nil {
		t.Error("server error not propagated")
	}
}
