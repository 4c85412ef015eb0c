// Package config holds user settings for the editor and its
// transcription backends, stored as a YAML file next to the working
// directory or at an explicit path.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "cueline.yaml"

type Config struct {
	// Transcription service
	Endpoint string `yaml:"endpoint"`
	Language string `yaml:"language"`
	Model    string `yaml:"whisper_model"`
	Device   string `yaml:"device"`

	// Direct API providers
	Provider       string `yaml:"provider"`
	OpenAIKey      string `yaml:"openai_api_key"`
	GeminiKey      string `yaml:"gemini_api_key"`
	AnthropicKey   string `yaml:"anthropic_api_key"`
	TargetLanguage string `yaml:"target_language"`
	TranslateModel string `yaml:"translate_model"`
	TranslateBatch int    `yaml:"translate_batch_size"`

	// Editor behavior
	MinCueDuration float64 `yaml:"min_cue_duration"`
	InsertDuration float64 `yaml:"insert_duration"`
	Scale          float64 `yaml:"timeline_scale"`

	// HTTP editor server
	ListenAddr string `yaml:"listen_addr"`

	path string
}

func defaultConfig() *Config {
	return &Config{
		Endpoint:       "http://localhost:8000",
		Language:       "en",
		Model:          "small",
		Device:         "cpu",
		Provider:       "service",
		MinCueDuration: 0.5,
		InsertDuration: 3.0,
		Scale:          10.0,
		ListenAddr:     ":8080",
	}
}

// Load reads the config at path, creating it with defaults when it
// does not exist. Fields present in the file override defaults, so a
// partial file is fine.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	cfg := defaultConfig()
	cfg.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

// Save writes the config back to the path it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = DefaultFileName
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", c.path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.MinCueDuration < 0 {
		return fmt.Errorf("min_cue_duration must not be negative")
	}
	if c.InsertDuration <= 0 {
		return fmt.Errorf("insert_duration must be positive")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("timeline_scale must be positive")
	}
	switch c.Device {
	case "cpu", "cuda":
	default:
		return fmt.Errorf("device must be cpu or cuda, got %q", c.Device)
	}
	return nil
}
