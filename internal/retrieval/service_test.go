package retrieval

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// fakeEmbedder maps known texts to fixed 2-d vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embeddings(_ context.Context, _ string, input []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(input))
	for i, text := range input {
		v, ok := f.vectors[text]
		if !ok {
			v = []float32{0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func testKB() []Item {
	return []Item{
		{Domain: "health", Lang: "en", Text: "free health screenings"},
		{Domain: "agriculture", Lang: "hi", Text: "crop insurance deadline"},
		{Domain: "education", Lang: "te", Text: "school scholarship portal"},
	}
}

func TestSearchRanksByCosineAndAppliesThreshold(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"free health screenings":  {1, 0},
		"crop insurance deadline": {0.8, 0.6},
		"school scholarship portal": {0, 1},
		"health checkup":          {1, 0},
	}}
	svc := New(embedder, "embed-model", time.Second, 3, 0.45, testKB())

	results, err := svc.Search(context.Background(), "health checkup")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// The orthogonal education entry scores 0 and is cut by the threshold.
	if len(results) != 2 {
		t.Fatalf("unexpected result count: %d (%+v)", len(results), results)
	}
	if results[0].Domain != "health" || results[1].Domain != "agriculture" {
		t.Fatalf("unexpected ranking: %+v", results)
	}
	if math.Abs(results[0].Score-1.0) > 1e-6 {
		t.Fatalf("unexpected top score: %f", results[0].Score)
	}
	if math.Abs(results[1].Score-0.8) > 1e-6 {
		t.Fatalf("unexpected second score: %f", results[1].Score)
	}
}

func TestSearchTruncatesToTopK(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"free health screenings":  {1, 0},
		"crop insurance deadline": {0.9, 0.1},
		"school scholarship portal": {0.8, 0.2},
		"anything":                {1, 0},
	}}
	svc := New(embedder, "embed-model", time.Second, 2, 0.1, testKB())

	results, err := svc.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("unexpected result count: %d", len(results))
	}
}

func TestSearchEmbedsKBOnce(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"free health screenings": {1, 0},
		"q":                      {1, 0},
	}}
	svc := New(embedder, "embed-model", time.Second, 3, 0.45, testKB())

	if _, err := svc.Search(context.Background(), "q"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, err := svc.Search(context.Background(), "q"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	// One KB embedding call plus one query call per search.
	if embedder.calls != 3 {
		t.Fatalf("unexpected embedder calls: %d", embedder.calls)
	}
}

func TestSearchPropagatesEmbedderError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("boom")}
	svc := New(embedder, "embed-model", time.Second, 3, 0.45, testKB())

	if _, err := svc.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error")
	}
}
