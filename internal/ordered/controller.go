// Package ordered keeps a locally cached, server-ordered sequence of
// entities consistent with the backend after mutations.
package ordered

import (
	"fmt"
	"sync"

	"faceswapadmin/internal/domain"
	applog "faceswapadmin/internal/log"
)

type Keyed interface {
	Key() int64
}

// Source is the backend side of one collection.
type Source[T Keyed] interface {
	List() ([]T, error)
	// Swap receives the id at the lower index first.
	Swap(lowID, highID int64) error
	Delete(id int64) error
}

// Reconcile selects what happens to the local sequence after a swap.
type Reconcile int

const (
	// Refetch discards the sequence and reloads the authoritative order.
	Refetch Reconcile = iota
	// SwapInPlace exchanges the two entries locally without a reload. It
	// drifts from the server if something else reordered the collection in
	// the meantime.
	SwapInPlace
)

func (r Reconcile) String() string {
	if r == SwapInPlace {
		return "swap_in_place"
	}
	return "refetch"
}

// Controller owns one ordered sequence. The mutex only guards the slice; it
// is never held across a Source call, so concurrent moves are not
// deduplicated.
type Controller[T Keyed] struct {
	name      string
	src       Source[T]
	reconcile Reconcile

	mu    sync.Mutex
	items []T
}

func New[T Keyed](name string, src Source[T], reconcile Reconcile) *Controller[T] {
	return &Controller[T]{name: name, src: src, reconcile: reconcile}
}

// Load replaces the local sequence with the server's order. On failure the
// previous sequence is kept.
func (c *Controller[T]) Load() error {
	items, err := c.src.List()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Refresh reloads after a mutation whose placement only the server knows.
func (c *Controller[T]) Refresh() error { return c.Load() }

func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Controller[T]) CanMoveUp(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return i > 0 && i < len(c.items)
}

func (c *Controller[T]) CanMoveDown(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return i >= 0 && i < len(c.items)-1
}

// MoveUp swaps the entry at i with the one at i-1.
func (c *Controller[T]) MoveUp(i int) error { return c.swapAt(i-1, i) }

// MoveDown swaps the entry at i with the one at i+1.
func (c *Controller[T]) MoveDown(i int) error { return c.swapAt(i, i+1) }

func (c *Controller[T]) swapAt(lo, hi int) error {
	c.mu.Lock()
	if lo < 0 || hi >= len(c.items) {
		n := len(c.items)
		c.mu.Unlock()
		return domain.Invalid("position", fmt.Sprintf("cannot swap rows %d and %d of %d", lo, hi, n))
	}
	lowID, highID := c.items[lo].Key(), c.items[hi].Key()
	c.mu.Unlock()

	if err := c.src.Swap(lowID, highID); err != nil {
		return err
	}

	if c.reconcile == Refetch {
		return c.Load()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	a, b := c.indexOf(lowID), c.indexOf(highID)
	if a < 0 || b < 0 {
		applog.Info(nil, "ordered."+c.name+".swap.stale", map[string]any{"id1": lowID, "id2": highID})
		return nil
	}
	c.items[a], c.items[b] = c.items[b], c.items[a]
	return nil
}

// Delete removes the entry only after the server confirmed the delete.
func (c *Controller[T]) Delete(id int64) error {
	if err := c.src.Delete(id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	return nil
}

func (c *Controller[T]) indexOf(id int64) int {
	for i, it := range c.items {
		if it.Key() == id {
			return i
		}
	}
	return -1
}
