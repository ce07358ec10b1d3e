// Package vectordb provides vector store adapters.
// Clean Architecture: Adapter implementing ports.VectorStore.
// The in-memory store backs ephemeral runs and tests; SQLite is the default.
package vectordb

import (
	"context"
	"sort"
	"sync"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
)

// InMemoryStore keeps chunks in process memory. Nothing survives a restart.
// Open-Closed: interchangeable with SQLiteStore without touching usecases.
type InMemoryStore struct {
	mu     sync.RWMutex
	chunks map[string][]entities.Chunk // source file -> chunks
	hashes map[string]string           // source file -> content hash
	order  []string                    // source files, first-indexed first
}

// NewInMemoryStore creates an empty in-memory vector store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		chunks: make(map[string][]entities.Chunk),
		hashes: make(map[string]string),
	}
}

// FileHash returns the stored content hash for a file, "" if never indexed.
func (s *InMemoryStore) FileHash(ctx context.Context, filename string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hashes[filename], nil
}

// ReplaceDocument swaps a file's chunk generation.
func (s *InMemoryStore) ReplaceDocument(ctx context.Context, filename, hash string, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.hashes[filename]; !seen {
		s.order = append(s.order, filename)
	}
	stored := make([]entities.Chunk, len(chunks))
	copy(stored, chunks)
	s.chunks[filename] = stored
	s.hashes[filename] = hash
	return nil
}

// Search finds the most similar chunks to a query embedding, best first.
// Ties keep insertion order, so files are scanned first-indexed first.
func (s *InMemoryStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.RetrievedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entities.RetrievedChunk
	for _, source := range s.order {
		for _, chunk := range s.chunks[source] {
			results = append(results, entities.RetrievedChunk{
				Text:   chunk.Text,
				Source: source,
				Score:  cosineSimilarity(embedding, chunk.Embedding),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// RemoveDocument deletes a file's chunks and hash record.
func (s *InMemoryStore) RemoveDocument(ctx context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chunks, filename)
	delete(s.hashes, filename)
	for i, name := range s.order {
		if name == filename {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Files returns every indexed file with its content hash.
func (s *InMemoryStore) Files(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.hashes))
	for k, v := range s.hashes {
		out[k] = v
	}
	return out, nil
}

// Count returns the number of stored chunks.
func (s *InMemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, chunks := range s.chunks {
		n += len(chunks)
	}
	return n, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
