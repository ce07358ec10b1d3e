// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// Document represents a source document read from the corpus directory.
type Document struct {
	Name    string // base filename, the document's identity in the index
	Path    string
	Content string
	Hash    string // hex digest of the full file content
}

// Chunk is a fixed-size word window of a document, the unit of embedding.
// (Source, Index) uniquely identifies a chunk within the store.
type Chunk struct {
	Source    string // owning document's filename
	Index     int    // position within the document
	Text      string
	Hash      string    // owning document's content hash at embedding time
	Embedding []float32 // vector representation (populated by adapter)
}

// RetrievedChunk is one entry of a retrieval result.
type RetrievedChunk struct {
	Text   string
	Source string
	Score  float64 // cosine similarity against the query
}

// Answer is a generated response together with the passages that grounded it.
type Answer struct {
	Text    string
	Sources []RetrievedChunk
}
