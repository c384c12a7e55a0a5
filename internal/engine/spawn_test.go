package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed Uint32 values and leaves shuffles untouched.
type scriptedRand struct {
	vals []uint32
}

func (r *scriptedRand) Uint32() uint32 {
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

func TestSpawnBound(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{2, 2, 1},
		{3, 3, 1},
		{4, 2, 1},
		{4, 4, 2},
		{5, 5, 2},
		{6, 6, 3},
		{8, 8, 4},
		{6, 4, 2},
	}

	for _, tt := range tests {
		s := New(tt.width, tt.height, rand.New(rand.NewSource(1)))
		assert.Equal(t, tt.want, s.spawnBound(), "%dx%d", tt.width, tt.height)
	}
}

func TestSpawnTilesOnNewGrid(t *testing.T) {
	seen := map[int]bool{}

	for seed := int64(0); seed < 200; seed++ {
		s := New(4, 4, rand.New(rand.NewSource(seed)))
		n := s.SpawnTiles()

		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 2)
		require.Equal(t, 16-n, s.EmptyCount())
		require.Equal(t, countEmpty(s), s.EmptyCount())
		seen[n] = true

		for _, row := range s.Rows() {
			for _, c := range row {
				if v, ok := c.Get(); ok {
					require.Contains(t, []uint32{2, 4}, v)
				}
			}
		}
	}

	assert.True(t, seen[1] && seen[2], "both spawn counts should occur across seeds")
}

func TestSpawnTilesRespectsBoundAndEmptyCells(t *testing.T) {
	for _, size := range [][2]int{{2, 2}, {3, 3}, {5, 5}, {6, 6}, {8, 8}} {
		for seed := int64(0); seed < 50; seed++ {
			s := New(size[0], size[1], rand.New(rand.NewSource(seed)))
			bound := s.spawnBound()
			for s.EmptyCount() > 0 {
				before := s.EmptyCount()
				n := s.SpawnTiles()
				require.GreaterOrEqual(t, n, 1)
				require.LessOrEqual(t, n, min(bound, before))
				require.Equal(t, before-n, s.EmptyCount())
				require.Equal(t, countEmpty(s), s.EmptyCount())
			}
		}
	}
}

func TestSpawnTilesOnFullGrid(t *testing.T) {
	s := fromInts(t, [][]uint32{
		{2, 4},
		{4, 2},
	})
	assert.Equal(t, 0, s.SpawnTiles())
	assert.Equal(t, 0, s.EmptyCount())
}

func TestSpawnTilesSingleEmptyCell(t *testing.T) {
	s := fromInts(t, [][]uint32{
		{2, 4, 8, 16},
		{4, 8, 16, 2},
		{8, 16, 2, 4},
		{16, 2, 4, 0},
	})
	s.rng = &scriptedRand{vals: []uint32{1, 0}}

	assert.Equal(t, 1, s.SpawnTiles())
	assert.Equal(t, 0, s.EmptyCount())
	assert.Equal(t, Value(2), s.At(3, 3))
}

func TestSpawnValueThreshold(t *testing.T) {
	tests := []struct {
		roll uint32
		want uint32
	}{
		{0, 2},
		{73, 2},  // 74 < 75
		{74, 4},  // 75 >= 75
		{99, 4},  // 100
		{173, 2}, // 173%100+1 = 74
		{174, 4},
	}

	for _, tt := range tests {
		s := New(2, 2, rand.New(rand.NewSource(1)))
		// count roll, then one value roll for the single tile
		s.rng = &scriptedRand{vals: []uint32{0, tt.roll}}

		require.Equal(t, 1, s.SpawnTiles())
		assert.Equal(t, Value(tt.want), s.At(0, 0), "roll %d", tt.roll)
	}
}

func TestSpawnFourShare(t *testing.T) {
	fours := 0
	for roll := uint32(0); roll < 100; roll++ {
		s := New(2, 2, rand.New(rand.NewSource(1)))
		s.rng = &scriptedRand{vals: []uint32{0, roll}}

		require.Equal(t, 1, s.SpawnTiles())
		v, ok := s.At(0, 0).Get()
		require.True(t, ok, "roll %d left the cell empty", roll)
		if v == 4 {
			fours++
		}
	}
	assert.Equal(t, 26, fours, "fours out of every 100 rolls")
}
