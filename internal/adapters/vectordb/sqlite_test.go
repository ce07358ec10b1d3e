package vectordb

import (
	"context"
	"errors"
	"testing"

	"github.com/jismyseban/MINI-RAG-BOT/internal/domain/entities"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_ReplaceAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []entities.Chunk{
		{Source: "doc.txt", Index: 0, Text: "hello", Hash: "h1", Embedding: []float32{1, 0, 0}},
		{Source: "doc.txt", Index: 1, Text: "world", Hash: "h1", Embedding: []float32{0, 1, 0}},
	}
	if err := store.ReplaceDocument(ctx, "doc.txt", "h1", chunks); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	results, err := store.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "hello" {
		t.Errorf("best match should be 'hello', got %q", results[0].Text)
	}
	if results[0].Score <= results[1].Score {
		t.Error("results should be ordered best first")
	}
	if results[0].Source != "doc.txt" {
		t.Errorf("wrong source: %q", results[0].Source)
	}
}

func TestSQLiteStore_ReplaceSwapsGeneration(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := []entities.Chunk{
		{Source: "doc.txt", Index: 0, Text: "old one", Hash: "h1", Embedding: []float32{1, 0}},
		{Source: "doc.txt", Index: 1, Text: "old two", Hash: "h1", Embedding: []float32{0, 1}},
	}
	if err := store.ReplaceDocument(ctx, "doc.txt", "h1", old); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	updated := []entities.Chunk{
		{Source: "doc.txt", Index: 0, Text: "new one", Hash: "h2", Embedding: []float32{1, 0}},
	}
	if err := store.ReplaceDocument(ctx, "doc.txt", "h2", updated); err != nil {
		t.Fatalf("re-replace failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 chunk after swap, got %d", count)
	}

	hash, err := store.FileHash(ctx, "doc.txt")
	if err != nil {
		t.Fatalf("file hash failed: %v", err)
	}
	if hash != "h2" {
		t.Errorf("expected hash h2, got %q", hash)
	}

	results, _ := store.Search(ctx, []float32{1, 0}, 10)
	for _, r := range results {
		if r.Text == "old one" || r.Text == "old two" {
			t.Error("old generation should be gone after replace")
		}
	}
}

func TestSQLiteStore_FileHashUnknownFile(t *testing.T) {
	store := newTestStore(t)

	hash, err := store.FileHash(context.Background(), "never-indexed.txt")
	if err != nil {
		t.Fatalf("file hash failed: %v", err)
	}
	if hash != "" {
		t.Errorf("unknown file should have empty hash, got %q", hash)
	}
}

func TestSQLiteStore_RemoveDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []entities.Chunk{
		{Source: "doc.txt", Index: 0, Text: "test", Hash: "h1", Embedding: []float32{1, 0, 0}},
	}
	if err := store.ReplaceDocument(ctx, "doc.txt", "h1", chunks); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if err := store.RemoveDocument(ctx, "doc.txt"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	results, _ := store.Search(ctx, []float32{1, 0, 0}, 10)
	if len(results) != 0 {
		t.Error("chunks should be gone after remove")
	}
	hash, _ := store.FileHash(ctx, "doc.txt")
	if hash != "" {
		t.Error("file hash record should be gone after remove")
	}
}

func TestSQLiteStore_Files(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.ReplaceDocument(ctx, "a.txt", "ha", []entities.Chunk{
		{Source: "a.txt", Index: 0, Text: "a", Hash: "ha", Embedding: []float32{1}},
	})
	store.ReplaceDocument(ctx, "b.txt", "hb", []entities.Chunk{
		{Source: "b.txt", Index: 0, Text: "b", Hash: "hb", Embedding: []float32{1}},
	})

	files, err := store.Files(ctx)
	if err != nil {
		t.Fatalf("files failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files["a.txt"] != "ha" || files["b.txt"] != "hb" {
		t.Errorf("wrong file hashes: %v", files)
	}
}

func TestSQLiteStore_SearchTopK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := make([]entities.Chunk, 10)
	for i := range chunks {
		chunks[i] = entities.Chunk{
			Source:    "doc.txt",
			Index:     i,
			Text:      "chunk",
			Hash:      "h1",
			Embedding: []float32{1, float32(i)},
		}
	}
	if err := store.ReplaceDocument(ctx, "doc.txt", "h1", chunks); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	results, err := store.Search(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	err = store.ReplaceDocument(ctx, "doc.txt", "h1", []entities.Chunk{
		{Source: "doc.txt", Index: 0, Text: "persistent", Hash: "h1", Embedding: []float32{1, 0}},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	hash, err := reopened.FileHash(ctx, "doc.txt")
	if err != nil {
		t.Fatalf("file hash failed: %v", err)
	}
	if hash != "h1" {
		t.Errorf("hash should survive reopen, got %q", hash)
	}
	results, _ := reopened.Search(ctx, []float32{1, 0}, 1)
	if len(results) != 1 || results[0].Text != "persistent" {
		t.Error("chunks should survive reopen")
	}
}

func TestSQLiteStore_ConcurrentSearchAndReplace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceDocument(ctx, "stable.txt", "hs", []entities.Chunk{
		{Source: "stable.txt", Index: 0, Text: "stable", Hash: "hs", Embedding: []float32{1, 0}},
	})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	generations := [2][]entities.Chunk{
		{{Source: "churn.txt", Index: 0, Text: "gen-a", Hash: "ha", Embedding: []float32{0, 1}}},
		{{Source: "churn.txt", Index: 0, Text: "gen-b", Hash: "hb", Embedding: []float32{0, 1}}},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			gen := generations[i%2]
			if err := store.ReplaceDocument(ctx, "churn.txt", gen[0].Hash, gen); err != nil {
				t.Errorf("concurrent replace failed: %v", err)
				return
			}
		}
	}()

	// Every search must see the untouched document plus at most one complete
	// generation of the churning one, never a mix.
	for i := 0; i < 50; i++ {
		results, err := store.Search(ctx, []float32{1, 0}, 10)
		if err != nil {
			t.Fatalf("concurrent search failed: %v", err)
		}

		sawStable := false
		churn := 0
		for _, r := range results {
			switch r.Source {
			case "stable.txt":
				sawStable = true
			case "churn.txt":
				churn++
				if r.Text != "gen-a" && r.Text != "gen-b" {
					t.Fatalf("torn chunk visible: %q", r.Text)
				}
			}
		}
		if !sawStable {
			t.Fatal("untouched document vanished during concurrent writes")
		}
		if churn > 1 {
			t.Fatalf("two generations visible at once (%d churn chunks)", churn)
		}
	}
	<-done
}

func TestSQLiteStore_ReplaceFailureWrapsSentinel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	store.db.Close() // force write failures

	err := store.ReplaceDocument(ctx, "doc.txt", "h1", nil)
	if !errors.Is(err, entities.ErrIndexWriteFailed) {
		t.Fatalf("expected index write failure, got %v", err)
	}
}

func TestEmbeddingRoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 1e6, 0}
	got, err := decodeEmbedding(encodeEmbedding(vec))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got) != len(vec) {
		t.Fatalf("expected %d values, got %d", len(vec), len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("value %d = %f, want %f", i, got[i], vec[i])
		}
	}

	if _, err := decodeEmbedding([]byte{1, 2, 3}); err == nil {
		t.Error("truncated blob should fail to decode")
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	c := []float32{0, 1, 0}

	if same := cosineSimilarity(a, b); same != 1.0 {
		t.Errorf("same vectors should have score 1.0, got %f", same)
	}
	if diff := cosineSimilarity(a, c); diff != 0.0 {
		t.Errorf("orthogonal vectors should have score 0.0, got %f", diff)
	}
	if zero := cosineSimilarity(a, []float32{1, 0}); zero != 0 {
		t.Errorf("mismatched lengths should score 0, got %f", zero)
	}
	if zero := cosineSimilarity(nil, nil); zero != 0 {
		t.Errorf("empty vectors should score 0, got %f", zero)
	}
}
