package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ParserConfig tunes the sentence extraction pipeline.
type ParserConfig struct {
	MinSentenceChars int    `yaml:"min_sentence_chars"`
	OnQualityIssue   string `yaml:"on_quality_issue"` // flag | discard
	WithoutContext   bool   `yaml:"without_context"`
}

// DecoderConfig controls PDF decoding.
type DecoderConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ONNXClassifierConfig locates the local model artifacts.
type ONNXClassifierConfig struct {
	ModelPath     string `yaml:"model_path"`
	TokenizerPath string `yaml:"tokenizer_path"`
	LibraryPath   string `yaml:"library_path"`
	BatchSize     int    `yaml:"batch_size"`
	MaxSeqLen     int    `yaml:"max_seq_len"`
}

// RemoteClassifierConfig holds connection details for an HTTP model server.
type RemoteClassifierConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size"`
}

// ClassifierConfig selects and configures the classifier backend.
type ClassifierConfig struct {
	Type   string                  `yaml:"type"` // onnx | remote | none
	ONNX   *ONNXClassifierConfig   `yaml:"onnx,omitempty"`
	Remote *RemoteClassifierConfig `yaml:"remote,omitempty"`
}

// ExportConfig configures the Excel output.
type ExportConfig struct {
	OutputPath string `yaml:"output_path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Parser     ParserConfig     `yaml:"parser"`
	Decoder    DecoderConfig    `yaml:"decoder"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Export     ExportConfig     `yaml:"export"`
}

// DecoderEnabled resolves the optional flag; decoding defaults to on.
func (c *AppConfig) DecoderEnabled() bool {
	return c.Decoder.Enabled == nil || *c.Decoder.Enabled
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/pdfactivity/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pdfactivity", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Parser:     ParserConfig{MinSentenceChars: 5, OnQualityIssue: "flag"},
		Classifier: ClassifierConfig{Type: "none"},
		Export:     ExportConfig{OutputPath: "activities.xlsx"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Parser.MinSentenceChars == 0 {
		cfg.Parser.MinSentenceChars = 5
	}
	if cfg.Parser.OnQualityIssue == "" {
		cfg.Parser.OnQualityIssue = "flag"
	}
	if cfg.Export.OutputPath == "" {
		cfg.Export.OutputPath = "activities.xlsx"
	}
	if cfg.Classifier.Type == "" {
		cfg.Classifier.Type = "none"
	}
	if cfg.Classifier.Type == "onnx" && cfg.Classifier.ONNX != nil {
		if cfg.Classifier.ONNX.BatchSize == 0 {
			cfg.Classifier.ONNX.BatchSize = 16
		}
		if cfg.Classifier.ONNX.MaxSeqLen == 0 {
			cfg.Classifier.ONNX.MaxSeqLen = 128
		}
	}
	if cfg.Classifier.Type == "remote" && cfg.Classifier.Remote != nil {
		if cfg.Classifier.Remote.TimeoutSecs == 0 {
			cfg.Classifier.Remote.TimeoutSecs = 30
		}
		if cfg.Classifier.Remote.BatchSize == 0 {
			cfg.Classifier.Remote.BatchSize = 16
		}
	}
}
