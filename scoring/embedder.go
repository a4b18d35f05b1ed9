package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// Embedder maps a batch of texts to fixed-length vectors, one per text and in
// the same order. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Named is implemented by embedders that can report a backend name for
// error messages.
type Named interface {
	Name() string
}

func backendName(e Embedder) string {
	if n, ok := e.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", e)
}

// LazyEmbedder defers backend construction until the first Embed call and
// then shares the one instance. A failed init is returned to every caller
// until the retry interval has passed; the next Embed after that tries again.
type LazyEmbedder struct {
	name       string
	init       func(ctx context.Context) (Embedder, error)
	retryAfter time.Duration
	now        func() time.Time

	mu       sync.Mutex
	emb      Embedder
	err      error
	failedAt time.Time
}

// NewLazyEmbedder wraps init. retryAfter bounds how often a failing init is
// attempted again; zero retries on every call.
func NewLazyEmbedder(name string, retryAfter time.Duration, init func(ctx context.Context) (Embedder, error)) *LazyEmbedder {
	return &LazyEmbedder{name: name, init: init, retryAfter: retryAfter, now: time.Now}
}

func (l *LazyEmbedder) Name() string { return l.name }

func (l *LazyEmbedder) load(ctx context.Context) (Embedder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.emb != nil {
		return l.emb, nil
	}
	if l.err != nil && l.now().Sub(l.failedAt) < l.retryAfter {
		return nil, l.err
	}
	emb, err := l.init(ctx)
	if err == nil && emb == nil {
		err = errors.New("embedder init returned nil")
	}
	if err != nil {
		l.err, l.failedAt = err, l.now()
		return nil, err
	}
	l.emb, l.err = emb, nil
	return emb, nil
}

func (l *LazyEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	emb, err := l.load(ctx)
	if err != nil {
		return nil, unavailable(l.name, "init", err)
	}
	return emb.Embed(ctx, texts)
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector has zero norm.
func CosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
