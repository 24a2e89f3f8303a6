package determinize

import "golang.org/x/exp/slices"

// Pool is a multiset of candidates for one category of hidden values, such as
// the cards nobody has seen yet. Order carries no meaning.
type Pool[T comparable] struct {
	items []T
}

func NewPool[T comparable](items ...T) *Pool[T] {
	return &Pool[T]{items: slices.Clone(items)}
}

func (p *Pool[T]) Len() int {
	return len(p.items)
}

func (p *Pool[T]) Add(items ...T) {
	p.items = append(p.items, items...)
}

// Remove takes one occurrence of item out of the pool and reports whether
// there was one.
func (p *Pool[T]) Remove(item T) bool {
	i := slices.Index(p.items, item)
	if i < 0 {
		return false
	}
	p.removeAt(i)
	return true
}

func (p *Pool[T]) Clone() *Pool[T] {
	return NewPool(p.items...)
}

// Items returns a copy of the pool's contents.
func (p *Pool[T]) Items() []T {
	return slices.Clone(p.items)
}

func (p *Pool[T]) Count(item T) int {
	count := 0
	for _, candidate := range p.items {
		if candidate == item {
			count++
		}
	}
	return count
}

func (p *Pool[T]) removeAt(i int) T {
	item := p.items[i]
	last := len(p.items) - 1
	p.items[i] = p.items[last]
	p.items = p.items[:last]
	return item
}
