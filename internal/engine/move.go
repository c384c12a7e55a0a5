package engine

// line is a view of one row or column ordered from the leading edge of a
// move (position 0) to its trailing edge (position n-1).
type line struct {
	s        *State
	fixed    int  // row index for horizontal lines, column index for vertical ones
	vertical bool // positions walk rows instead of columns
	start    int  // grid index of position 0
	step     int  // +1 or -1
	n        int
}

// cell returns a pointer to the grid slot at position p.
func (l line) cell(p int) *Cell {
	idx := l.start + p*l.step
	if l.vertical {
		return &l.s.grid[idx][l.fixed]
	}
	return &l.s.grid[l.fixed][idx]
}

// lines returns every line of the grid oriented for a move in dir.
func (s *State) lines(dir Direction) []line {
	var out []line
	switch dir {
	case Up, Down:
		start, step := 0, 1
		if dir == Down {
			start, step = s.height-1, -1
		}
		for c := 0; c < s.width; c++ {
			out = append(out, line{s: s, fixed: c, vertical: true, start: start, step: step, n: s.height})
		}
	case Left, Right:
		start, step := 0, 1
		if dir == Right {
			start, step = s.width-1, -1
		}
		for r := 0; r < s.height; r++ {
			out = append(out, line{s: s, fixed: r, start: start, step: step, n: s.width})
		}
	default:
		panic("engine: invalid direction " + dir.String())
	}
	return out
}

// MoveTo pushes every tile toward dir, merging equal neighbours once.
// It reports whether any cell changed. No tile is spawned here.
func (s *State) MoveTo(dir Direction) bool {
	moved := false
	for _, l := range s.lines(dir) {
		if l.compact() {
			moved = true
		}
	}
	return moved
}

// compact runs one pass over the line with two cursors. dst is the slot
// values settle into, src the next candidate behind it. Every slot strictly
// between dst and src is empty.
func (l line) compact() bool {
	moved := false
	dst := 0
	for src := 1; src < l.n; src++ {
		d, sc := l.cell(dst), l.cell(src)

		switch {
		case d.IsEmpty() && sc.IsEmpty():
			// nothing to pull yet
		case d.IsEmpty():
			*d, *sc = *sc, Empty
			moved = true
		case sc.IsEmpty():
			// dst holds its value; keep looking behind it
		default:
			v0, _ := d.Get()
			v1, _ := sc.Get()
			if v0 == v1 {
				*d, *sc = Value(v0*2), Empty
				l.s.emptyCount++
				moved = true
				// merged tiles are settled for the rest of the pass
				dst++
				break
			}
			next := l.cell(dst + 1)
			if next != sc {
				*next, *sc = *sc, *next
				moved = true
			}
			dst++
		}
	}
	return moved
}
