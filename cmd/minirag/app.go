package main

import (
	"fmt"
	"time"

	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/cache"
	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/embedding"
	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/llm"
	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/loader"
	"github.com/jismyseban/MINI-RAG-BOT/internal/adapters/vectordb"
	"github.com/jismyseban/MINI-RAG-BOT/internal/config"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/ports"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/usecases"
)

// app bundles the wired components behind the CLI commands.
type app struct {
	cfg       *config.AppConfig
	store     ports.VectorStore
	loader    *loader.TextLoader
	indexer   *usecases.IndexUseCase
	retriever *usecases.RetrieveUseCase
	answerer  *usecases.AnswerUseCase
}

// newApp loads configuration and wires every adapter to the usecases.
func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	generator, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	queryCache := cache.NewLRUCache(cfg.Cache.Capacity, time.Duration(cfg.Cache.TTLSecs)*time.Second)
	retriever := usecases.NewRetrieveUseCase(embedder, store, queryCache, cfg.Retrieval.TopK, cfg.Retrieval.MinScore)

	return &app{
		cfg:       cfg,
		store:     store,
		loader:    loader.NewTextLoader(),
		indexer:   usecases.NewIndexUseCase(embedder, store, cfg.ChunkWords),
		retriever: retriever,
		answerer:  usecases.NewAnswerUseCase(retriever, generator),
	}, nil
}

// Close releases the vector store.
func (a *app) Close() error {
	return a.store.Close()
}

// loadConfigOnly is for commands that only need the store, not the backends.
func loadConfigOnly() (*config.AppConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func buildStore(cfg *config.AppConfig) (ports.VectorStore, error) {
	switch cfg.Store.Type {
	case "sqlite":
		store, err := vectordb.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening vector store: %w", err)
		}
		return store, nil
	case "memory":
		// Ephemeral index, re-built on every start. Useful for trying the
		// bot out without leaving a database behind.
		return vectordb.NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

func buildEmbedder(cfg *config.AppConfig) (ports.EmbeddingService, error) {
	switch cfg.Embedder.Type {
	case "ollama":
		return embedding.NewOllamaAdapter(cfg.Embedder.Ollama.BaseURL, cfg.Embedder.Ollama.Model), nil
	case "openai":
		c := cfg.Embedder.OpenAI
		return embedding.NewOpenAIAdapter(c.BaseURL, config.Secret(c.APIKeyEnv), c.Model), nil
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
}

func buildLLM(cfg *config.AppConfig) (ports.LLMService, error) {
	switch cfg.LLM.Type {
	case "huggingface":
		c := cfg.LLM.HuggingFace
		return llm.NewHuggingFaceAdapter(c.BaseURL, config.Secret(c.TokenEnv), c.Model, c.MaxTokens), nil
	case "ollama":
		return llm.NewOllamaLLMAdapter(cfg.LLM.Ollama.BaseURL, cfg.LLM.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm type %q", cfg.LLM.Type)
	}
}
