package config

import "testing"

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("LLM_RATE_LIMIT", "")

	cfg := Load()
	if cfg.NATSSubject != "spedizioni.events" {
		t.Fatalf("expected default subject, got %q", cfg.NATSSubject)
	}
	if cfg.UploadMaxBytes != 25*1024*1024 {
		t.Fatalf("expected default upload cap, got %d", cfg.UploadMaxBytes)
	}
	if cfg.LLMRateLimit != 2 {
		t.Fatalf("expected default rate limit 2, got %v", cfg.LLMRateLimit)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("LLM_RATE_LIMIT", "0.5")
	t.Setenv("OPENAI_MODEL", "gpt-5-mini")

	cfg := Load()
	if cfg.UploadMaxBytes != 1048576 {
		t.Fatalf("expected upload cap override, got %d", cfg.UploadMaxBytes)
	}
	if cfg.LLMRateLimit != 0.5 {
		t.Fatalf("expected rate limit 0.5, got %v", cfg.LLMRateLimit)
	}
	if cfg.OpenAIModel != "gpt-5-mini" {
		t.Fatalf("expected model override, got %q", cfg.OpenAIModel)
	}
}

func TestLoadFallsBackOnBadNumbers(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "venticinque")

	cfg := Load()
	if cfg.UploadMaxBytes != 25*1024*1024 {
		t.Fatalf("expected fallback on parse failure, got %d", cfg.UploadMaxBytes)
	}
}
