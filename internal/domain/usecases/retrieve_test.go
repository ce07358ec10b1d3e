package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
)

// mockCache implements ports.QueryCache for testing
type mockCache struct {
	entries map[string][]entities.RetrievedChunk
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]entities.RetrievedChunk)}
}

func (m *mockCache) Get(key string) ([]entities.RetrievedChunk, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *mockCache) Put(key string, results []entities.RetrievedChunk) {
	m.puts++
	m.entries[key] = results
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What is RAG?", "what is rag?"},
		{"  what   is\trag? ", "what is rag?"},
		{"WHAT IS RAG?", "what is rag?"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeQuery(tt.in); got != tt.want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRetrieve_FiltersBelowThreshold(t *testing.T) {
	embedder := &mockEmbedder{}
	store := newMockVectorStore()
	store.searchResults = []entities.RetrievedChunk{
		{Text: "a", Source: "a.txt", Score: 0.91},
		{Text: "b", Source: "b.txt", Score: 0.50},
		{Text: "c", Source: "c.txt", Score: 0.49},
		{Text: "d", Source: "d.txt", Score: 0.30},
		{Text: "e", Source: "e.txt", Score: 0.10},
	}
	uc := NewRetrieveUseCase(embedder, store, nil, 5, 0.50)

	got, err := uc.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks at or above threshold, got %d", len(got))
	}
	if got[0].Text != "a" || got[1].Text != "b" {
		t.Errorf("wrong chunks kept: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestRetrieve_FallsBackToBestMatch(t *testing.T) {
	embedder := &mockEmbedder{}
	store := newMockVectorStore()
	store.searchResults = []entities.RetrievedChunk{
		{Text: "best", Source: "a.txt", Score: 0.42},
		{Text: "worse", Source: "b.txt", Score: 0.21},
	}
	uc := NewRetrieveUseCase(embedder, store, nil, 5, 0.50)

	got, err := uc.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("fallback should keep exactly one chunk, got %d", len(got))
	}
	if got[0].Text != "best" {
		t.Errorf("fallback kept %q, want the highest-scoring chunk", got[0].Text)
	}
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	embedder := &mockEmbedder{}
	store := newMockVectorStore()
	uc := NewRetrieveUseCase(embedder, store, nil, 5, 0.50)

	got, err := uc.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("empty corpus should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestRetrieve_CacheHitSkipsEmbedding(t *testing.T) {
	embedder := &mockEmbedder{}
	store := newMockVectorStore()
	store.searchResults = []entities.RetrievedChunk{
		{Text: "hit", Source: "a.txt", Score: 0.88},
	}
	cache := newMockCache()
	uc := NewRetrieveUseCase(embedder, store, cache, 5, 0.50)

	first, err := uc.Retrieve(context.Background(), "What is RAG?")
	if err != nil {
		t.Fatalf("first retrieve failed: %v", err)
	}

	// Same question modulo case and whitespace must hit the cache.
	second, err := uc.Retrieve(context.Background(), "  what IS   rag? ")
	if err != nil {
		t.Fatalf("second retrieve failed: %v", err)
	}

	if embedder.embedCalls != 1 {
		t.Errorf("cache hit should not embed again, got %d calls", embedder.embedCalls)
	}
	if len(first) != len(second) || first[0].Text != second[0].Text {
		t.Error("cached result differs from the original")
	}
}

func TestRetrieve_CacheStoresFilteredResult(t *testing.T) {
	embedder := &mockEmbedder{}
	store := newMockVectorStore()
	store.searchResults = []entities.RetrievedChunk{
		{Text: "good", Source: "a.txt", Score: 0.80},
		{Text: "bad", Source: "b.txt", Score: 0.20},
	}
	cache := newMockCache()
	uc := NewRetrieveUseCase(embedder, store, cache, 5, 0.50)

	if _, err := uc.Retrieve(context.Background(), "query"); err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}

	cached, ok := cache.Get("query")
	if !ok {
		t.Fatal("result was not cached")
	}
	if len(cached) != 1 || cached[0].Text != "good" {
		t.Error("cache must hold the filtered result, not the raw search output")
	}
}

func TestRetrieve_EmbedderFailure(t *testing.T) {
	embedder := &mockEmbedder{
		embedFn: func(string) ([]float32, error) {
			return nil, entities.ErrEmbeddingUnavailable
		},
	}
	store := newMockVectorStore()
	uc := NewRetrieveUseCase(embedder, store, nil, 5, 0.50)

	_, err := uc.Retrieve(context.Background(), "anything")
	if !errors.Is(err, entities.ErrEmbeddingUnavailable) {
		t.Fatalf("expected embedding backend error, got %v", err)
	}
}
