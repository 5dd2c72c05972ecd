// Package completion is the client for the upstream chat-completion API.
// It makes exactly one request per call: no retries, no streaming.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"hindipath/internal/apperr"
)

// TimeoutMessage is what the learner sees when the tutor does not answer in time
const TimeoutMessage = "Gurujee is taking too long. Try again."

const maxErrorBody = 64 << 10

// Config holds the upstream settings
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Message represents a message in the conversation sent upstream
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorBody covers the shapes the upstream uses for failures:
// {"detail": {"msg": ...}}, {"detail": "..."} and {"error": {"message": ...}}
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the chat-completion endpoint
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a client. Zero values in cfg get the defaults the tutor uses.
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.Model == "" {
		cfg.Model = "sarvam-m"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 800
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Complete sends the system instruction followed by the conversation and
// returns the assistant's reply. Failures come back as *apperr.Error: Timeout
// when the deadline passes, Upstream for anything the provider rejected.
func (c *Client) Complete(ctx context.Context, system string, history []Message) (string, error) {
	if !c.Configured() {
		return "", apperr.Unavailable("Service not configured. Please contact admin.")
	}

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: system})
	messages = append(messages, history...)

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-subscription-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", apperr.Timeout(TimeoutMessage, err)
		}
		return "", apperr.Upstream(http.StatusBadGateway, "Could not reach Gurujee. Try again.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := upstreamMessage(raw)
		return "", apperr.Upstream(resp.StatusCode, msg, fmt.Errorf("completion API returned %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if isTimeout(ctx, err) {
			return "", apperr.Timeout(TimeoutMessage, err)
		}
		return "", apperr.Upstream(http.StatusBadGateway, "Gurujee sent an unreadable reply.", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", apperr.Upstream(http.StatusBadGateway, "Gurujee sent an empty reply.", errors.New("no completion choices returned"))
	}

	return parsed.Choices[0].Message.Content, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// upstreamMessage pulls a human-readable message out of an error body
func upstreamMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if len(body.Detail) > 0 {
			var detail struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal(body.Detail, &detail); err == nil && detail.Msg != "" {
				return detail.Msg
			}
			var s string
			if err := json.Unmarshal(body.Detail, &s); err == nil && s != "" {
				return s
			}
			if d := strings.TrimSpace(string(body.Detail)); d != "" && d != "null" {
				return d
			}
		}
		if body.Error != nil && body.Error.Message != "" {
			return body.Error.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) <= 300 {
		return text
	}
	return "Gurujee is unavailable right now. Try again."
}
