package ordered

import "strings"

type Direction int

const (
	Up Direction = iota
	Down
)

func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return Up, false
}

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Move applies MoveUp or MoveDown to the row at i.
func (c *Controller[T]) Move(i int, d Direction) error {
	if d == Down {
		return c.MoveDown(i)
	}
	return c.MoveUp(i)
}
