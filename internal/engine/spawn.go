package engine

import "math/bits"

// fourThreshold: a roll of rand%100+1 at or above it spawns a 4.
// That is 26 outcomes out of 100.
const fourThreshold = 75

// spawnBound is the largest number of tiles one spawn may place:
// floor(log2(width*height)) - 2, and never less than 1.
func (s *State) spawnBound() int {
	bound := bits.Len(uint(s.width*s.height)) - 1 - 2
	if bound < 1 {
		bound = 1
	}
	return bound
}

// SpawnTiles places between 1 and spawnBound new tiles on random empty
// cells, fewer if the grid has fewer empty cells. It returns how many were
// placed.
func (s *State) SpawnTiles() int {
	empty := make([][2]int, 0, s.emptyCount)
	for r, row := range s.grid {
		for c, cell := range row {
			if cell.IsEmpty() {
				empty = append(empty, [2]int{r, c})
			}
		}
	}

	s.rng.Shuffle(len(empty), func(i, j int) {
		empty[i], empty[j] = empty[j], empty[i]
	})

	count := min(1+int(s.rng.Uint32()%uint32(s.spawnBound())), len(empty))

	for _, pos := range empty[:count] {
		v := uint32(2)
		if s.rng.Uint32()%100+1 >= fourThreshold {
			v = 4
		}
		s.grid[pos[0]][pos[1]] = Value(v)
	}

	s.emptyCount -= count
	return count
}
