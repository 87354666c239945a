package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenAIClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewOpenAIClient(newTestLogger(t)); err == nil {
		t.Fatalf("expected error for missing OPENAI_API_KEY")
	}
}

func TestChatCompletion_SendsRequestAndReturnsContent(t *testing.T) {
	var gotReq chatCompletionRequest
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "hello there"}},
			},
		})
	}))
	defer ts.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	client, err := NewOpenAIClient(newTestLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := client.ChatCompletion(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "hello there" {
		t.Fatalf("unexpected content %q", content)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 2000 {
		t.Fatalf("unexpected max_tokens %d", gotReq.MaxTokens)
	}
	if gotReq.Temperature != 0.7 {
		t.Fatalf("unexpected temperature %v", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %+v", gotReq.Messages)
	}
}

func TestChatCompletion_SingleAttemptOnUpstreamError(t *testing.T) {
	var attempts int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer ts.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)

	client, err := NewOpenAIClient(newTestLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.ChatCompletion(context.Background(), "s", "u")
	if err == nil {
		t.Fatalf("expected error for 429")
	}
	var httpErr *openAIHTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected openAIHTTPError with 429, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected exactly one attempt, got %d", attempts)
	}
}

func TestChatCompletion_NoChoicesIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)

	client, err := NewOpenAIClient(newTestLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.ChatCompletion(context.Background(), "s", "u"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}
