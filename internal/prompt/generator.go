package prompt

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Generator turns a prompt into an image URL.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PlaceholderImages are returned by StubGenerator.
var PlaceholderImages = []string{
	"https://images.unsplash.com/photo-1518709268805-4e9042af2176?w=600&h=400&fit=crop",
	"https://images.unsplash.com/photo-1517077304055-6e89abbf09b0?w=600&h=400&fit=crop",
	"https://images.unsplash.com/photo-1550684376-efcbd6e3f031?w=600&h=400&fit=crop",
}

// StubGenerator stands in for a real image model: after Delay it returns
// one of URLs picked uniformly at random. It never fails unless ctx is
// cancelled first.
type StubGenerator struct {
	Delay time.Duration
	URLs  []string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewStubGenerator(delay time.Duration, rng *rand.Rand) *StubGenerator {
	return &StubGenerator{Delay: delay, URLs: PlaceholderImages, rng: rng}
}

func (g *StubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	timer := time.NewTimer(g.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	g.mu.Lock()
	i := g.rng.Intn(len(g.URLs))
	g.mu.Unlock()
	return g.URLs[i], nil
}
