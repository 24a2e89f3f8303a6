// Package determinize turns a partially observed game state into one concrete
// instance by sampling every hidden value from pools of candidates.
package determinize

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Resolver fills in one category of hidden information on a private copy.
type Resolver[S any] func(copy S) error

// ThenBranch resolves every hidden category of copy in order and then
// enumerates its successors. copy must not be shared with anyone else.
func ThenBranch[S any](copy S, resolvers []Resolver[S], branch func(S) []S) ([]S, error) {
	for i, resolve := range resolvers {
		if err := resolve(copy); err != nil {
			return nil, fmt.Errorf("failed to run resolver %d: %w", i, err)
		}
	}
	return branch(copy), nil
}

// Choose picks one of options uniformly at random.
func Choose[S any](rng *rand.Rand, options []S) S {
	if len(options) == 0 {
		panic("no options to choose from")
	}
	return options[intn(rng, len(options))]
}
