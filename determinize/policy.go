package determinize

import (
	"errors"
	"fmt"
	randv2 "math/rand/v2"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

var ErrPoolExhausted = errors.New("not enough candidates left in pool")

// Policy decides which candidates fill a hidden slot. Draw removes the drawn
// items from the pool. On error the pool is left unchanged.
type Policy[T comparable] interface {
	Draw(pool *Pool[T], n int) ([]T, error)
}

func checkDraw[T comparable](pool *Pool[T], n int) error {
	if n < 0 {
		return fmt.Errorf("cannot draw %d items", n)
	}
	if n > pool.Len() {
		return fmt.Errorf("%w: want %d, have %d", ErrPoolExhausted, n, pool.Len())
	}
	return nil
}

// Uniform draws every remaining candidate with equal probability.
type Uniform[T comparable] struct {
	rng *rand.Rand
}

// NewUniform samples from rng, or from the package-level source if rng is nil.
func NewUniform[T comparable](rng *rand.Rand) Uniform[T] {
	return Uniform[T]{rng: rng}
}

func (u Uniform[T]) Draw(pool *Pool[T], n int) ([]T, error) {
	if err := checkDraw(pool, n); err != nil {
		return nil, err
	}
	drawn := make([]T, n)
	for i := range drawn {
		drawn[i] = pool.removeAt(intn(u.rng, pool.Len()))
	}
	return drawn, nil
}

// Weighted draws candidates without replacement, each with probability
// proportional to its weight among those still in the pool. Candidates with
// zero weight are only drawn once every positive-weight candidate is gone.
type Weighted[T comparable] struct {
	weight func(T) float64
	rng    *rand.Rand
}

func NewWeighted[T comparable](weight func(T) float64, rng *rand.Rand) Weighted[T] {
	return Weighted[T]{weight: weight, rng: rng}
}

func (w Weighted[T]) Draw(pool *Pool[T], n int) ([]T, error) {
	if err := checkDraw(pool, n); err != nil {
		return nil, err
	}
	if n == 0 {
		return []T{}, nil
	}

	items := pool.Items()
	weights := make([]float64, len(items))
	for i, item := range items {
		weights[i] = max(w.weight(item), 0)
	}

	sampler := sampleuv.NewWeighted(weights, source(w.rng))
	taken := make([]bool, len(items))
	drawn := make([]T, 0, n)
	for len(drawn) < n {
		i, ok := sampler.Take()
		if !ok { // Only zero weights left
			break
		}
		taken[i] = true
		drawn = append(drawn, items[i])
	}

	rest := NewPool[T]()
	for i, item := range items {
		if !taken[i] {
			rest.Add(item)
		}
	}
	if len(drawn) < n {
		filler, err := NewUniform[T](w.rng).Draw(rest, n-len(drawn))
		if err != nil {
			return nil, err
		}
		drawn = append(drawn, filler...)
	}

	for _, item := range drawn {
		pool.Remove(item)
	}
	return drawn, nil
}

// source hands rng to gonum samplers. A nil rng stays a nil interface so
// they fall back to their global source.
func source(rng *rand.Rand) randv2.Source {
	if rng == nil {
		return nil
	}
	return rng
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}
