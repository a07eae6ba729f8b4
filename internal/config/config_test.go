package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser.MinSentenceChars != 5 {
		t.Errorf("min chars = %d, want 5", cfg.Parser.MinSentenceChars)
	}
	if cfg.Parser.OnQualityIssue != "flag" {
		t.Errorf("quality policy = %q, want flag", cfg.Parser.OnQualityIssue)
	}
	if cfg.Classifier.Type != "none" {
		t.Errorf("classifier = %q, want none", cfg.Classifier.Type)
	}
	if cfg.Export.OutputPath != "activities.xlsx" {
		t.Errorf("output path = %q", cfg.Export.OutputPath)
	}
	if !cfg.DecoderEnabled() {
		t.Error("decoder should default to enabled")
	}
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
parser:
  min_sentence_chars: 10
  on_quality_issue: discard
classifier:
  type: remote
  remote:
    base_url: http://localhost:8080
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser.MinSentenceChars != 10 || cfg.Parser.OnQualityIssue != "discard" {
		t.Errorf("parser = %+v", cfg.Parser)
	}
	if cfg.Classifier.Remote.TimeoutSecs != 30 || cfg.Classifier.Remote.BatchSize != 16 {
		t.Errorf("remote defaults = %+v", cfg.Classifier.Remote)
	}
	if cfg.Export.OutputPath != "activities.xlsx" {
		t.Errorf("output path default = %q", cfg.Export.OutputPath)
	}
}

func TestLoadDecoderDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("decoder:\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DecoderEnabled() {
		t.Error("decoder should be disabled")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Parser.MinSentenceChars = 7
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Parser.MinSentenceChars != 7 {
		t.Fatalf("round trip min chars = %d", loaded.Parser.MinSentenceChars)
	}
}
