// Package loader provides document loading adapters.
// Clean Architecture: Adapter implementing ports.DocumentSource.
package loader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
)

// TextLoader loads plain text documents from a directory.
type TextLoader struct{}

// NewTextLoader creates a new text document loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// SupportedExtensions returns the file extensions this loader handles.
func (l *TextLoader) SupportedExtensions() []string {
	return []string{".txt", ".md", ".markdown"}
}

// Load reads a single document. The hash is computed over the raw content,
// so renaming a file does not change it.
func (l *TextLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &entities.Document{
		Name:    filepath.Base(path),
		Path:    path,
		Content: string(content),
		Hash:    contentHash(content),
	}, nil
}

// Scan loads every supported document directly under dir. Subdirectories and
// unsupported extensions are skipped. Entries come back in name order.
func (l *TextLoader) Scan(ctx context.Context, dir string) ([]entities.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var docs []entities.Document
	for _, entry := range entries {
		if entry.IsDir() || !l.isSupported(entry.Name()) {
			continue
		}
		doc, err := l.Load(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// isSupported checks the file extension against the supported list.
func (l *TextLoader) isSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.SupportedExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

// contentHash returns the hex SHA-1 of the document content.
func contentHash(content []byte) string {
	sum := sha1.Sum(content)
	return hex.EncodeToString(sum[:])
}
