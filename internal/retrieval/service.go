// Package retrieval ranks knowledge base entries against a query by cosine
// similarity of upstream embeddings.
package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

type Embedder interface {
	Embeddings(ctx context.Context, model string, input []string) ([][]float32, error)
}

type Result struct {
	Domain string
	Lang   string
	Score  float64
	Text   string
}

type Service struct {
	embedder  Embedder
	model     string
	timeout   time.Duration
	topK      int
	threshold float64
	kb        []Item

	mu        sync.Mutex
	kbVectors [][]float32
}

func New(embedder Embedder, model string, timeout time.Duration, topK int, threshold float64, kb []Item) *Service {
	return &Service{
		embedder:  embedder,
		model:     model,
		timeout:   timeout,
		topK:      topK,
		threshold: threshold,
		kb:        kb,
	}
}

// Search returns up to topK entries scoring at or above the threshold, in
// descending score order.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	kbVectors, err := s.ensureKBVectors(ctx)
	if err != nil {
		return nil, err
	}

	queryVectors, err := s.embedder.Embeddings(ctx, s.model, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVector := normalize(queryVectors[0])

	scored := make([]Result, 0, len(s.kb))
	for i, item := range s.kb {
		score := dot(queryVector, kbVectors[i])
		if score >= s.threshold {
			scored = append(scored, Result{
				Domain: item.Domain,
				Lang:   item.Lang,
				Score:  score,
				Text:   item.Text,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > s.topK {
		scored = scored[:s.topK]
	}
	return scored, nil
}

// ensureKBVectors embeds the knowledge base once and caches the normalized
// vectors. A failed attempt is retried on the next call.
func (s *Service) ensureKBVectors(ctx context.Context) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kbVectors != nil {
		return s.kbVectors, nil
	}

	texts := make([]string, len(s.kb))
	for i, item := range s.kb {
		texts[i] = item.Text
	}

	vectors, err := s.embedder.Embeddings(ctx, s.model, texts)
	if err != nil {
		return nil, fmt.Errorf("embed knowledge base: %w", err)
	}
	for i := range vectors {
		vectors[i] = normalize(vectors[i])
	}
	s.kbVectors = vectors
	return s.kbVectors, nil
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := math.Sqrt(sum)
	if n == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		if i >= len(b) {
			break
		}
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
