package kook

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
bots:
  - token: tok-1
  - token: tok-2
compress: true
ignore_other_bots: true
nicknames: [kbot]
suppressed_events: [notice., meta_event]
api_timeout: 10s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Bots) != 2 || cfg.Bots[0].Token != "tok-1" {
		t.Errorf("bots = %+v", cfg.Bots)
	}
	if !cfg.Compress || !cfg.IgnoreOtherBots {
		t.Errorf("flags: compress=%v ignore=%v", cfg.Compress, cfg.IgnoreOtherBots)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %s", cfg.APITimeout)
	}
	if len(cfg.SuppressEvents) != 2 || cfg.SuppressEvents[0] != "notice." {
		t.Errorf("SuppressEvents = %v", cfg.SuppressEvents)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("token: tok-1\ncompress: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KOOK_COMPRESS", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Compress {
		t.Fatalf("environment did not override compress")
	}
	if len(cfg.Bots) != 1 || cfg.Bots[0].Token != "tok-1" {
		t.Fatalf("single token not merged into bots: %+v", cfg.Bots)
	}
}

func TestValidateRejectsNoTokens(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted a config without tokens")
	}
	cfg.Bots = []BotConfig{{Token: ""}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate accepted an empty token")
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Token: "tok"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.APIBaseURL == "" || cfg.APITimeout <= 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
