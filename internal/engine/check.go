package engine

// CheckWin reports whether any cell holds exactly WinValue.
func (s *State) CheckWin() bool {
	for _, row := range s.grid {
		for _, c := range row {
			if v, ok := c.Get(); ok && v == WinValue {
				return true
			}
		}
	}
	return false
}

// CheckLose reports whether the grid is full and no two orthogonal
// neighbours are equal.
func (s *State) CheckLose() bool {
	if s.emptyCount != 0 {
		return false
	}

	for r := 0; r < s.height; r++ {
		for c := 0; c < s.width; c++ {
			cell := s.grid[r][c]
			if cell.IsEmpty() {
				// counter out of sync; a move is still possible
				return false
			}
			if r > 0 && cell == s.grid[r-1][c] {
				return false
			}
			if r < s.height-1 && cell == s.grid[r+1][c] {
				return false
			}
			if c > 0 && cell == s.grid[r][c-1] {
				return false
			}
			if c < s.width-1 && cell == s.grid[r][c+1] {
				return false
			}
		}
	}
	return true
}
