package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hindipath/internal/apperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", APIKey: "test-key", Timeout: timeout}, srv.Client())
}

func TestCompleteSendsPromptAndHistory(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("api-subscription-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"नमस्ते | Namaste | Hello | வணக்கம்"}}]}`))
	}, time.Second)

	reply, err := client.Complete(context.Background(), "system prompt", []Message{{Role: "user", Content: "Hello"}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "नमस्ते | Namaste | Hello | வணக்கம்" {
		t.Errorf("reply = %q", reply)
	}
	if got.Model != "sarvam-m" || got.MaxTokens != 800 || got.Temperature != 0.7 {
		t.Errorf("request settings = %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "system prompt" || got.Messages[1].Content != "Hello" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "detail object", status: http.StatusForbidden, body: `{"detail":{"msg":"Invalid API key"}}`, wantStatus: http.StatusForbidden, wantMsg: "Invalid API key"},
		{name: "detail string", status: http.StatusTooManyRequests, body: `{"detail":"Rate limit exceeded"}`, wantStatus: http.StatusTooManyRequests, wantMsg: "Rate limit exceeded"},
		{name: "openai style", status: http.StatusBadRequest, body: `{"error":{"message":"bad model"}}`, wantStatus: http.StatusBadRequest, wantMsg: "bad model"},
		{name: "plain text", status: http.StatusInternalServerError, body: `upstream exploded`, wantStatus: http.StatusInternalServerError, wantMsg: "upstream exploded"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantStatus: http.StatusBadGateway, wantMsg: "Gurujee sent an empty reply."},
		{name: "garbage success", status: http.StatusOK, body: `not json`, wantStatus: http.StatusBadGateway, wantMsg: "Gurujee sent an unreadable reply."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, time.Second)

			_, err := client.Complete(context.Background(), "sys", nil)
			if !apperr.Is(err, apperr.KindUpstream) {
				t.Fatalf("Complete() error = %v, want upstream error", err)
			}
			if got := apperr.StatusOf(err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
			if got := apperr.MessageOf(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
			if calls != 1 {
				t.Errorf("upstream called %d times, want exactly 1", calls)
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 50*time.Millisecond)
	defer close(release)

	_, err := client.Complete(context.Background(), "sys", nil)
	if !apperr.Is(err, apperr.KindTimeout) {
		t.Fatalf("Complete() error = %v, want timeout", err)
	}
	if apperr.MessageOf(err) != TimeoutMessage {
		t.Errorf("message = %q", apperr.MessageOf(err))
	}
}

func TestCompleteNotConfigured(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	if client.Configured() {
		t.Fatal("Configured() = true without API key")
	}
	_, err := client.Complete(context.Background(), "sys", nil)
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("Complete() error = %v, want unavailable", err)
	}
}
