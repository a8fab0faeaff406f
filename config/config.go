// Package config loads the JSON config file and applies environment
// overrides. The file is optional; the binary runs on defaults plus
// OPENAI_API_KEY alone.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	DefaultServerAddr = ":8080"
	DefaultSessionTTL = 30 // minutes
	DefaultMaxTokens  = 2500
)

// defaultModels is the fallback order: primary first.
var defaultModels = []string{"gpt-4o", "gpt-4-turbo", "gpt-3.5-turbo"}

type Config struct {
	ServerAddr        string     `json:"server_addr,omitempty"`
	SessionTTLMinutes int        `json:"session_ttl_minutes,omitempty"`
	LLM               *LLMConfig `json:"llm,omitempty"`
	Log               *LogConfig `json:"log,omitempty"`
}

type LLMConfig struct {
	Provider  string   `json:"provider,omitempty"`
	Models    []string `json:"models,omitempty"`
	APIKey    string   `json:"api_key,omitempty"`
	BaseURL   string   `json:"base_url,omitempty"`
	MaxTokens int64    `json:"max_tokens,omitempty"`
}

type LogConfig struct {
	Level    string `json:"level,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// Load reads the file at path when it exists, fills the gaps with defaults,
// then lets selected environment variables win.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// run on defaults and env
	default:
		return Config{}, err
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = DefaultServerAddr
	}
	if cfg.SessionTTLMinutes <= 0 {
		cfg.SessionTTLMinutes = DefaultSessionTTL
	}
	if cfg.LLM == nil {
		cfg.LLM = &LLMConfig{}
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if len(cfg.LLM.Models) == 0 {
		cfg.LLM.Models = append([]string(nil), defaultModels...)
	}
	if cfg.LLM.MaxTokens <= 0 {
		cfg.LLM.MaxTokens = DefaultMaxTokens
	}
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.FilePath == "" {
		cfg.Log.FilePath = "logs/planner.log"
	}
}

func applyEnv(cfg *Config) {
	cfg.LLM.APIKey = getEnv("OPENAI_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("OPENAI_BASE_URL", cfg.LLM.BaseURL)
	cfg.ServerAddr = getEnv("SERVER_ADDR", cfg.ServerAddr)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
