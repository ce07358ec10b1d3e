// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code, NO external dependencies - just pure business logic.
package usecases

import "strings"

// DefaultChunkWords is the target window size, in words, for document chunks.
const DefaultChunkWords = 150

// ChunkWords splits text into consecutive windows of targetWords words each.
// Deterministic: the same input always yields the same windows in the same
// order. The last window may be shorter; a document with fewer words than
// targetWords yields exactly one chunk. Empty or whitespace-only input
// yields nil.
func ChunkWords(text string, targetWords int) []string {
	if targetWords <= 0 {
		targetWords = DefaultChunkWords
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+targetWords-1)/targetWords)
	for start := 0; start < len(words); start += targetWords {
		end := start + targetWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
