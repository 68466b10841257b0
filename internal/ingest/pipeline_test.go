// ABOUTME: Tests for the ingestion pipeline
// ABOUTME: Verifies idempotency, chunk metadata, and blank-text no-ops
package ingest

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/fitanalysis/server/internal/models"
	"github.com/fitanalysis/server/internal/storage/sqlite"
)

type countingEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	// Deterministic toy vector derived from the text length
	return []float64{float64(len(text)), 1, 0}, nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *sqlite.ChunkStore, *countingEmbedder) {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := sqlite.NewChunkStore(db)
	embedder := &countingEmbedder{}
	logger := log.New(io.Discard, "", 0)
	return NewPipeline(store, embedder, 100, logger), store, embedder
}

func TestIngestTextStoresChunks(t *testing.T) {
	pipeline, store, _ := newTestPipeline(t)

	text := strings.Repeat("This is a sentence about squats. ", 10)
	err := pipeline.IngestText(context.Background(), "vid_1", models.SourceTypeVideo, text,
		map[string]any{"video_title": "Leg Day"})
	if err != nil {
		t.Fatalf("IngestText() error = %v", err)
	}

	chunks, err := store.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for long text, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.SourceID != "vid_1" {
			t.Errorf("chunk %d SourceID = %v", i, chunk.SourceID)
		}
		if chunk.SourceType != models.SourceTypeVideo {
			t.Errorf("chunk %d SourceType = %v", i, chunk.SourceType)
		}
		if chunk.Text == "" {
			t.Errorf("chunk %d has empty text", i)
		}
		// JSON round-trips numbers as float64
		if chunk.Metadata["chunk_index"] != float64(i) {
			t.Errorf("chunk %d metadata chunk_index = %v, want %d", i, chunk.Metadata["chunk_index"], i)
		}
		if chunk.Metadata["video_title"] != "Leg Day" {
			t.Errorf("chunk %d metadata video_title = %v", i, chunk.Metadata["video_title"])
		}
	}
}

func TestIngestTextIsIdempotent(t *testing.T) {
	pipeline, store, embedder := newTestPipeline(t)

	text := "First point. Second point. Third point."
	ctx := context.Background()
	if err := pipeline.IngestText(ctx, "vid_1", models.SourceTypeVideo, text, nil); err != nil {
		t.Fatalf("first IngestText() error = %v", err)
	}

	first, err := store.CountBySource("vid_1")
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	callsAfterFirst := embedder.calls

	if err := pipeline.IngestText(ctx, "vid_1", models.SourceTypeVideo, text, nil); err != nil {
		t.Fatalf("second IngestText() error = %v", err)
	}

	second, err := store.CountBySource("vid_1")
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	if second != first {
		t.Errorf("chunk count after re-ingest = %d, want %d", second, first)
	}
	if embedder.calls != callsAfterFirst {
		t.Errorf("re-ingest made %d extra embedding calls", embedder.calls-callsAfterFirst)
	}
}

func TestIngestTextBlankIsNoOp(t *testing.T) {
	pipeline, store, embedder := newTestPipeline(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		if err := pipeline.IngestText(context.Background(), "vid_1", models.SourceTypeVideo, text, nil); err != nil {
			t.Fatalf("IngestText(%q) error = %v", text, err)
		}
	}

	count, err := store.CountBySource("vid_1")
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	if count != 0 {
		t.Errorf("blank ingestion stored %d chunks", count)
	}
	if embedder.calls != 0 {
		t.Errorf("blank ingestion made %d embedding calls", embedder.calls)
	}
}

func TestIngestTextConcurrentSameSource(t *testing.T) {
	pipeline, store, _ := newTestPipeline(t)

	text := "Squats build strength. Deadlifts build more. Rest matters."
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pipeline.IngestText(context.Background(), "vid_race", models.SourceTypeVideo, text, nil)
		}()
	}
	wg.Wait()

	count, err := store.CountBySource("vid_race")
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}

	// Single-writer count for comparison
	fresh, freshStore, _ := newTestPipeline(t)
	if err := fresh.IngestText(context.Background(), "vid_race", models.SourceTypeVideo, text, nil); err != nil {
		t.Fatalf("IngestText() error = %v", err)
	}
	want, err := freshStore.CountBySource("vid_race")
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}

	if count != want {
		t.Errorf("concurrent ingestion stored %d chunks, want %d", count, want)
	}
}

func TestIngestPapersMissingDirectory(t *testing.T) {
	pipeline, store, _ := newTestPipeline(t)

	if err := pipeline.IngestPapers(context.Background(), "does/not/exist"); err != nil {
		t.Fatalf("IngestPapers() error = %v, want no-op", err)
	}

	chunks, err := store.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("missing directory stored %d chunks", len(chunks))
	}
}

func TestIngestPapersEmptyDirectory(t *testing.T) {
	pipeline, _, embedder := newTestPipeline(t)

	dir := t.TempDir()
	if err := pipeline.IngestPapers(context.Background(), dir); err != nil {
		t.Fatalf("IngestPapers() error = %v, want no-op", err)
	}
	if embedder.calls != 0 {
		t.Errorf("empty directory made %d embedding calls", embedder.calls)
	}
}
