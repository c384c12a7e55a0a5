package engine

// Direction is the way tiles are pushed by a move.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Directions lists all four directions in a stable order.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}
