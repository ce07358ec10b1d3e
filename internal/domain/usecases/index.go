// Package usecases - index.go keeps the vector store in sync with the corpus.
package usecases

import (
	"context"
	"fmt"
	"log"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/ports"
)

// IndexUseCase handles document ingestion into the vector store.
// Indexing is incremental: a document whose content hash matches the stored
// generation is skipped without any embedding work.
type IndexUseCase struct {
	embedder   ports.EmbeddingService
	store      ports.VectorStore
	chunkWords int
}

// NewIndexUseCase creates an IndexUseCase with injected dependencies.
func NewIndexUseCase(embedder ports.EmbeddingService, store ports.VectorStore, chunkWords int) *IndexUseCase {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}
	return &IndexUseCase{
		embedder:   embedder,
		store:      store,
		chunkWords: chunkWords,
	}
}

// IndexDocument chunks, embeds and stores a single document.
// The swap from the old chunk generation to the new one is atomic: a
// mid-way failure leaves the prior generation intact.
func (uc *IndexUseCase) IndexDocument(ctx context.Context, doc *entities.Document) error {
	stored, err := uc.store.FileHash(ctx, doc.Name)
	if err != nil {
		return fmt.Errorf("reading stored hash for %s: %w", doc.Name, err)
	}
	if stored == doc.Hash {
		return nil // unchanged, skip re-embedding
	}

	texts := ChunkWords(doc.Content, uc.chunkWords)
	if len(texts) == 0 {
		// Document emptied out: drop whatever generation exists.
		return uc.store.RemoveDocument(ctx, doc.Name)
	}

	embeddings, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %s: %w", doc.Name, err)
	}

	chunks := make([]entities.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = entities.Chunk{
			Source:    doc.Name,
			Index:     i,
			Text:      text,
			Hash:      doc.Hash,
			Embedding: embeddings[i],
		}
	}

	return uc.store.ReplaceDocument(ctx, doc.Name, doc.Hash, chunks)
}

// Sync indexes every given document and removes store entries whose file is
// no longer part of the corpus. One failing document does not abort the
// pass; failures are logged and counted.
func (uc *IndexUseCase) Sync(ctx context.Context, docs []entities.Document) error {
	failed := 0
	current := make(map[string]struct{}, len(docs))

	for i := range docs {
		doc := &docs[i]
		current[doc.Name] = struct{}{}
		if err := uc.IndexDocument(ctx, doc); err != nil {
			log.Printf("[ERROR] indexing %s: %v", doc.Name, err)
			failed++
		}
	}

	stored, err := uc.store.Files(ctx)
	if err != nil {
		return fmt.Errorf("listing indexed files: %w", err)
	}
	for name := range stored {
		if _, ok := current[name]; ok {
			continue
		}
		log.Printf("[INFO] %s removed from corpus, deleting its chunks", name)
		if err := uc.store.RemoveDocument(ctx, name); err != nil {
			log.Printf("[ERROR] removing %s: %v", name, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("sync finished with %d failed documents", failed)
	}
	return nil
}

// Remove deletes a document's chunks from the store.
func (uc *IndexUseCase) Remove(ctx context.Context, filename string) error {
	return uc.store.RemoveDocument(ctx, filename)
}
