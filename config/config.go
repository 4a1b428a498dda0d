// Package config loads operator configuration: an optional YAML file plus
// .env and environment overrides, with working defaults for a local-only
// session.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/keepsake/device"
)

// Config is the full operator surface.
type Config struct {
	DataDir string `yaml:"data_dir"`

	// Store selects the backend: pebble (default), postgres, remote, memory
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	RemoteURL   string `yaml:"remote_url"`

	// ShareBaseURL prefixes shareable links, e.g. https://keepsake.example
	ShareBaseURL string `yaml:"share_base_url"`

	// TrackDir holds the theme default soundtracks; AudioPool is the
	// operator-configured pool of fallback track URLs
	TrackDir  string   `yaml:"track_dir"`
	AudioPool []string `yaml:"audio_pool"`

	ScribeURL   string `yaml:"scribe_url"`
	ScribeModel string `yaml:"scribe_model"`

	// Server settings for `keepsake serve`
	ServerAddr string  `yaml:"server_addr"`
	RateRPS    float64 `yaml:"rate_rps"`
	RateBurst  int     `yaml:"rate_burst"`
}

func defaults() Config {
	dataDir := device.DefaultDir()
	return Config{
		DataDir:      dataDir,
		Store:        "pebble",
		ShareBaseURL: "https://keepsake.local",
		TrackDir:     filepath.Join(dataDir, "tracks"),
		ScribeModel:  "llama3.2",
		ServerAddr:   ":8480",
		RateRPS:      5,
		RateBurst:    10,
	}
}

// Load reads config from path (optional; "" checks the default location),
// then applies .env and environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path == "" {
		candidate := filepath.Join(cfg.DataDir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.DataDir, "KEEPSAKE_DATA")
	set(&cfg.Store, "KEEPSAKE_STORE")
	set(&cfg.DatabaseURL, "DATABASE_URL")
	set(&cfg.RemoteURL, "KEEPSAKE_REMOTE_URL")
	set(&cfg.ShareBaseURL, "KEEPSAKE_SHARE_BASE_URL")
	set(&cfg.TrackDir, "KEEPSAKE_TRACK_DIR")
	set(&cfg.ScribeURL, "KEEPSAKE_SCRIBE_URL")
	set(&cfg.ScribeModel, "KEEPSAKE_SCRIBE_MODEL")
	set(&cfg.ServerAddr, "KEEPSAKE_SERVER_ADDR")
}
