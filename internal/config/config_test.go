package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "SECRET_KEY", "SARVAM_KEY", "CHAT_TIMEOUT", "TTS_TIMEOUT", "SESSION_DURATION"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "5000" {
		t.Errorf("ServerPort = %q, want 5000", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.ChatTimeout != 30*time.Second {
		t.Errorf("ChatTimeout = %v, want 30s", cfg.ChatTimeout)
	}
	if cfg.TTSTimeout != 20*time.Second {
		t.Errorf("TTSTimeout = %v, want 20s", cfg.TTSTimeout)
	}
	if cfg.TutorEnabled() {
		t.Error("TutorEnabled() should be false without SARVAM_KEY")
	}
	if !cfg.SessionSecretGenerated || len(cfg.SessionSecret) != 64 {
		t.Errorf("expected generated 64-char secret, got %q (generated=%v)", cfg.SessionSecret, cfg.SessionSecretGenerated)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SARVAM_KEY", "key")
	t.Setenv("SARVAM_BASE_URL", "http://upstream.local/")
	t.Setenv("CHAT_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()

	if cfg.SessionSecret != "s3cret" || cfg.SessionSecretGenerated {
		t.Errorf("SessionSecret = %q (generated=%v)", cfg.SessionSecret, cfg.SessionSecretGenerated)
	}
	if !cfg.TutorEnabled() {
		t.Error("TutorEnabled() should be true with SARVAM_KEY")
	}
	if cfg.SarvamBaseURL != "http://upstream.local" {
		t.Errorf("SarvamBaseURL = %q, want trailing slash trimmed", cfg.SarvamBaseURL)
	}
	if cfg.ChatTimeout != 5*time.Second {
		t.Errorf("ChatTimeout = %v, want 5s", cfg.ChatTimeout)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d, want default 10", cfg.RateLimitPerMinute)
	}
}
