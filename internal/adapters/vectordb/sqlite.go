// Package vectordb provides vector store adapters.
// Clean Architecture: Adapter implementing ports.VectorStore.
// SQLite gives persistent storage with a single embedded file and no server.
package vectordb

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements ports.VectorStore with SQLite-based persistence.
// Similarity search is brute force over all stored embeddings, which is fine
// for corpora of a few thousand chunks. Swap in an ANN index if that stops
// holding.
type SQLiteStore struct {
	mu       sync.RWMutex
	db       *sql.DB
	dataPath string
}

// NewSQLiteStore opens (or creates) a persistent vector store under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "vectors.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{
		db:       db,
		dataPath: dataPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		source TEXT NOT NULL,
		chunk_index INTEGER NOT NULL,
		chunk TEXT NOT NULL,
		embedding BLOB NOT NULL,
		content_hash TEXT NOT NULL,
		PRIMARY KEY (source, chunk_index)
	);
	CREATE TABLE IF NOT EXISTS files_meta (
		file TEXT PRIMARY KEY,
		sha1 TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// FileHash returns the stored content hash for a file, or "" when the file
// has never been indexed.
func (s *SQLiteStore) FileHash(ctx context.Context, filename string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT sha1 FROM files_meta WHERE file = ?", filename).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading file hash: %w", err)
	}
	return hash, nil
}

// ReplaceDocument swaps a file's chunk generation in one transaction: the old
// chunks are deleted, the new ones inserted and the file hash recorded. A
// failure rolls everything back, leaving the prior generation intact.
func (s *SQLiteStore) ReplaceDocument(ctx context.Context, filename, hash string, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", entities.ErrIndexWriteFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", filename); err != nil {
		return fmt.Errorf("%w: deleting old chunks: %v", entities.ErrIndexWriteFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (source, chunk_index, chunk, embedding, content_hash)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %v", entities.ErrIndexWriteFailed, err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		_, err = stmt.ExecContext(ctx,
			filename,
			chunk.Index,
			chunk.Text,
			encodeEmbedding(chunk.Embedding),
			chunk.Hash,
		)
		if err != nil {
			return fmt.Errorf("%w: inserting chunk %d: %v", entities.ErrIndexWriteFailed, chunk.Index, err)
		}
	}

	_, err = tx.ExecContext(ctx, "INSERT OR REPLACE INTO files_meta (file, sha1) VALUES (?, ?)", filename, hash)
	if err != nil {
		return fmt.Errorf("%w: recording file hash: %v", entities.ErrIndexWriteFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", entities.ErrIndexWriteFailed, err)
	}
	return nil
}

// Search finds the most similar chunks to a query embedding, best first.
// Ties keep insertion order.
func (s *SQLiteStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.RetrievedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, chunk, embedding
		FROM chunks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []entities.RetrievedChunk
	for rows.Next() {
		var source, text string
		var blob []byte

		if err := rows.Scan(&source, &text, &blob); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		vec, err := decodeEmbedding(blob)
		if err != nil {
			continue // Skip corrupted embeddings
		}

		results = append(results, entities.RetrievedChunk{
			Text:   text,
			Source: source,
			Score:  cosineSimilarity(embedding, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// RemoveDocument deletes a file's chunks and its hash record.
func (s *SQLiteStore) RemoveDocument(ctx context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", filename); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM files_meta WHERE file = ?", filename); err != nil {
		return fmt.Errorf("deleting file record: %w", err)
	}
	return tx.Commit()
}

// Files returns every indexed file with its stored content hash.
func (s *SQLiteStore) Files(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT file, sha1 FROM files_meta")
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	files := make(map[string]string)
	for rows.Next() {
		var file, hash string
		if err := rows.Scan(&file, &hash); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		files[file] = hash
	}
	return files, rows.Err()
}

// Count returns the number of stored chunks.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeEmbedding packs a vector as little-endian float32 bytes.
func encodeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeEmbedding unpacks a little-endian float32 blob.
func decodeEmbedding(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	if err := binary.Read(bytes.NewReader(blob), binary.LittleEndian, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
