package ordered

// Row is one displayed entry with its move controls.
type Row[T Keyed] struct {
	Index       int
	Item        T
	CanMoveUp   bool
	CanMoveDown bool
}

func (c *Controller[T]) Rows() []Row[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]Row[T], len(c.items))
	for i, it := range c.items {
		rows[i] = Row[T]{
			Index:       i,
			Item:        it,
			CanMoveUp:   i > 0,
			CanMoveDown: i < len(c.items)-1,
		}
	}
	return rows
}
