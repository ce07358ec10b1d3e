// Package usecases - retrieve.go handles query-time retrieval and scoring policy.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/ports"
)

const (
	// DefaultTopK is how many candidates the store search returns.
	DefaultTopK = 5

	// DefaultMinScore is the similarity threshold below which candidates
	// are dropped (subject to the fallback rule).
	DefaultMinScore = 0.50
)

// RetrieveUseCase orchestrates retrieval: cache consultation, query
// embedding, similarity search and score-threshold filtering.
//
// The threshold-with-fallback policy is deliberate: returning zero context
// would force the generation step to answer with no grounding at all, so
// when nothing reaches the threshold the single best match is kept instead.
type RetrieveUseCase struct {
	embedder ports.EmbeddingService
	store    ports.VectorStore
	cache    ports.QueryCache
	topK     int
	minScore float64
}

// NewRetrieveUseCase creates a RetrieveUseCase with injected dependencies.
// cache may be nil to disable query caching.
func NewRetrieveUseCase(embedder ports.EmbeddingService, store ports.VectorStore, cache ports.QueryCache, topK int, minScore float64) *RetrieveUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &RetrieveUseCase{
		embedder: embedder,
		store:    store,
		cache:    cache,
		topK:     topK,
		minScore: minScore,
	}
}

// NormalizeQuery case-folds and collapses whitespace so trivially different
// spellings of the same question share one cache entry.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Retrieve returns the most relevant chunks for a query.
// A cache hit short-circuits before any embedding call. An empty corpus
// yields an empty result, not an error.
func (uc *RetrieveUseCase) Retrieve(ctx context.Context, query string) ([]entities.RetrievedChunk, error) {
	key := NormalizeQuery(query)
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(key); ok {
			return cached, nil
		}
	}

	vec, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := uc.store.Search(ctx, vec, uc.topK)
	if err != nil {
		return nil, fmt.Errorf("searching vectors: %w", err)
	}

	filtered := uc.applyThreshold(results)
	if uc.cache != nil {
		uc.cache.Put(key, filtered)
	}
	return filtered, nil
}

// applyThreshold drops candidates below minScore. If that would drop
// everything, the single highest-scoring candidate is kept; search results
// are already in descending score order so that is results[0].
func (uc *RetrieveUseCase) applyThreshold(results []entities.RetrievedChunk) []entities.RetrievedChunk {
	if len(results) == 0 {
		return nil
	}

	var kept []entities.RetrievedChunk
	for _, r := range results {
		if r.Score >= uc.minScore {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		kept = []entities.RetrievedChunk{results[0]}
	}
	return kept
}
