// Package audio forwards text to the upstream speech-synthesis API and hands
// back the decoded audio.
package audio

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"hindipath/internal/apperr"
	"hindipath/internal/logger"
)

// MaxTextLength is the longest text forwarded upstream, in characters
const MaxTextLength = 500

// UnavailableMessage is the single error learners see for any synthesis failure
const UnavailableMessage = "TTS unavailable"

const maxErrorBody = 300

// Voice holds the fixed synthesis parameters
type Voice struct {
	LanguageCode string
	Speaker      string
	Model        string
	Pace         float64
}

// DefaultVoice is the Hindi voice the tutor speaks with
var DefaultVoice = Voice{LanguageCode: "hi-IN", Speaker: "shubh", Model: "bulbul:v3", Pace: 0.9}

type ttsRequest struct {
	Text                string  `json:"text"`
	TargetLanguageCode  string  `json:"target_language_code"`
	Speaker             string  `json:"speaker"`
	Model               string  `json:"model"`
	Pace                float64 `json:"pace"`
	EnablePreprocessing bool    `json:"enable_preprocessing"`
}

type ttsResponse struct {
	Audios []string `json:"audios"`
}

// Gateway provides text-to-speech functionality
type Gateway struct {
	baseURL    string
	apiKey     string
	voice      Voice
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

// NewGateway creates a synthesis gateway. An empty apiKey leaves it disabled.
func NewGateway(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client, log *logger.Logger) *Gateway {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		voice:      DefaultVoice,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log.With("component", "tts"),
	}
}

// Truncate cuts text to at most MaxTextLength characters
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxTextLength {
		return text
	}
	return string([]rune(text)[:MaxTextLength])
}

// Synthesize returns raw audio for text. Empty text is a validation error;
// every other failure is logged and reported as the same upstream error.
func (g *Gateway) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = Truncate(strings.TrimSpace(text))
	if text == "" {
		return nil, apperr.Validation("No text")
	}

	audio, err := g.synthesize(ctx, text)
	if err != nil {
		g.log.Warn("speech synthesis failed", "error", err, "chars", utf8.RuneCountInString(text))
		return nil, apperr.Upstream(http.StatusBadGateway, UnavailableMessage, err)
	}
	return audio, nil
}

func (g *Gateway) synthesize(ctx context.Context, text string) ([]byte, error) {
	if g.apiKey == "" {
		return nil, errors.New("no API key configured")
	}

	body, err := json.Marshal(ttsRequest{
		Text:                text,
		TargetLanguageCode:  g.voice.LanguageCode,
		Speaker:             g.voice.Speaker,
		Model:               g.voice.Model,
		Pace:                g.voice.Pace,
		EnablePreprocessing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/text-to-speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-subscription-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, snippet)
	}

	var parsed ttsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Audios) == 0 || parsed.Audios[0] == "" {
		return nil, errors.New("response contained no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(parsed.Audios[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("decoded audio is empty")
	}
	return audio, nil
}
