// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
)

// EmbeddingService generates vector embeddings for text.
// The vector dimension is fixed for the lifetime of an index; indexing and
// querying must use the same model or similarity scores are meaningless.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMService generates text responses from a language model.
type LLMService interface {
	// Generate produces a response for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// VectorStore persists chunk embeddings keyed by source document and
// supports exact top-k cosine search.
type VectorStore interface {
	// FileHash returns the content hash stored for a filename, or "" if
	// the file has never been indexed.
	FileHash(ctx context.Context, filename string) (string, error)

	// ReplaceDocument atomically swaps all chunks for a filename with the
	// given generation. Either every new chunk commits or the prior
	// generation remains intact.
	ReplaceDocument(ctx context.Context, filename, hash string, chunks []entities.Chunk) error

	// Search scans all stored embeddings and returns the topK most similar
	// entries in descending score order, ties broken by insertion order.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.RetrievedChunk, error)

	// RemoveDocument deletes all chunks belonging to a filename.
	RemoveDocument(ctx context.Context, filename string) error

	// Files lists indexed filenames with their stored content hashes.
	Files(ctx context.Context) (map[string]string, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// QueryCache maps a normalized query to a previously computed retrieval
// result. It is a performance optimization only: a cold cache must yield
// the same results as a warm one, and any malfunction degrades to a miss.
type QueryCache interface {
	Get(key string) ([]entities.RetrievedChunk, bool)
	Put(key string, results []entities.RetrievedChunk)
}

// DocumentSource yields the documents of a corpus.
type DocumentSource interface {
	// Load reads a single document and computes its content hash.
	Load(ctx context.Context, path string) (*entities.Document, error)

	// Scan loads every supported document under dir.
	Scan(ctx context.Context, dir string) ([]entities.Document, error)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
