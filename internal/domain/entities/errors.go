package entities

import "errors"

var (
	// ErrEmbeddingUnavailable means the embedding backend could not be
	// reached or returned a failure. Callers decide the retry policy.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

	// ErrIndexWriteFailed means a document's chunk generation could not be
	// replaced; the prior generation is left intact.
	ErrIndexWriteFailed = errors.New("index write failed")
)
