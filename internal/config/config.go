// Package config loads the application configuration from YAML with
// environment variables filling in secrets.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreConfig selects the vector store implementation.
type StoreConfig struct {
	Type string `yaml:"type"` // "sqlite" or "memory"
}

// RetrievalConfig tunes query-time retrieval.
type RetrievalConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float64 `yaml:"min_score"`
}

// CacheConfig tunes the query result cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
	TTLSecs  int `yaml:"ttl_secs"`
}

// OllamaConfig contains connection details for a local Ollama instance.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// OpenAIEmbedderConfig holds configuration for an OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the embedding backend.
type EmbedderConfig struct {
	Type   string                `yaml:"type"` // "ollama" or "openai"
	Ollama *OllamaConfig         `yaml:"ollama,omitempty"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// HuggingFaceConfig holds configuration for the HF chat completions backend.
type HuggingFaceConfig struct {
	BaseURL   string `yaml:"base_url"`
	TokenEnv  string `yaml:"token_env"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	Type        string             `yaml:"type"` // "huggingface" or "ollama"
	HuggingFace *HuggingFaceConfig `yaml:"huggingface,omitempty"`
	Ollama      *OllamaConfig      `yaml:"ollama,omitempty"`
}

// TelegramConfig configures the Telegram transport.
type TelegramConfig struct {
	TokenEnv string `yaml:"token_env"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DataDir    string          `yaml:"data_dir"` // corpus directory
	DBPath     string          `yaml:"db_path"`  // vector store directory
	ChunkWords int             `yaml:"chunk_words"`
	Store      StoreConfig     `yaml:"store"`
	Retrieval  RetrievalConfig `yaml:"retrieval"`
	Cache      CacheConfig     `yaml:"cache"`
	Embedder   EmbedderConfig  `yaml:"embedder"`
	LLM        LLMConfig       `yaml:"llm"`
	Telegram   TelegramConfig  `yaml:"telegram"`
}

// Load reads a config from the given path. A missing file yields defaults.
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
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Secret resolves an env-var-referenced secret, "" when unset.
func Secret(envVar string) string {
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.DataDir == "" {
		cfg.DataDir = "./docs"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data"
	}
	if cfg.ChunkWords == 0 {
		cfg.ChunkWords = 150
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "sqlite"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.MinScore == 0 {
		cfg.Retrieval.MinScore = 0.50
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 256
	}
	if cfg.Cache.TTLSecs == 0 {
		cfg.Cache.TTLSecs = 300
	}

	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "ollama"
	}
	if cfg.Embedder.Type == "ollama" {
		if cfg.Embedder.Ollama == nil {
			cfg.Embedder.Ollama = &OllamaConfig{}
		}
		if cfg.Embedder.Ollama.BaseURL == "" {
			cfg.Embedder.Ollama.BaseURL = "http://localhost:11434"
		}
		if cfg.Embedder.Ollama.Model == "" {
			cfg.Embedder.Ollama.Model = "nomic-embed-text"
		}
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}

	if cfg.LLM.Type == "" {
		cfg.LLM.Type = "huggingface"
	}
	if cfg.LLM.Type == "huggingface" {
		if cfg.LLM.HuggingFace == nil {
			cfg.LLM.HuggingFace = &HuggingFaceConfig{}
		}
		if cfg.LLM.HuggingFace.BaseURL == "" {
			cfg.LLM.HuggingFace.BaseURL = "https://router.huggingface.co/v1"
		}
		if cfg.LLM.HuggingFace.TokenEnv == "" {
			cfg.LLM.HuggingFace.TokenEnv = "HF_TOKEN"
		}
		if cfg.LLM.HuggingFace.Model == "" {
			cfg.LLM.HuggingFace.Model = "mistralai/Mistral-7B-Instruct-v0.2"
		}
		if cfg.LLM.HuggingFace.MaxTokens == 0 {
			cfg.LLM.HuggingFace.MaxTokens = 300
		}
	}
	if cfg.LLM.Type == "ollama" {
		if cfg.LLM.Ollama == nil {
			cfg.LLM.Ollama = &OllamaConfig{}
		}
		if cfg.LLM.Ollama.BaseURL == "" {
			cfg.LLM.Ollama.BaseURL = "http://localhost:11434"
		}
		if cfg.LLM.Ollama.Model == "" {
			cfg.LLM.Ollama.Model = "llama3.2"
		}
	}

	if cfg.Telegram.TokenEnv == "" {
		cfg.Telegram.TokenEnv = "TELEGRAM_BOT_TOKEN"
	}
}
