package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Limits   LimitsConfig   `yaml:"limits"`
	Baseline BaselineConfig `yaml:"baseline"`
	Log      LogConfig      `yaml:"log"`
}

// LLMConfig points at an OpenAI-compatible endpoint.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// LimitsConfig bounds calls to the chat model.
type LimitsConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// BaselineConfig controls indicator loading.
type BaselineConfig struct {
	CacheDir       string `yaml:"cache_dir"`
	TTLHours       int    `yaml:"ttl_hours"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Workers        int    `yaml:"workers"`
	Offline        bool   `yaml:"offline"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a yaml config from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
