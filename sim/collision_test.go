package sim

import (
	"testing"

	"github.com/beka-birhanu/mazebound/maze"
	"github.com/stretchr/testify/assert"
)

// corridorMaze builds a deterministic 3x3 maze with a single open corridor
// (0,0)→(0,1)→(1,1); every other wall stays closed.
func corridorMaze(t *testing.T) *maze.Maze {
	m, err := maze.New(3)
	assert.NoError(t, err)

	for row := range m.Grid {
		for col := range m.Grid[row] {
			m.Grid[row][col] = maze.Cell{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}
		}
	}
	m.Grid[0][0].EastWall = false
	m.Grid[0][1].WestWall = false
	m.Grid[0][1].SouthWall = false
	m.Grid[1][1].NorthWall = false
	return m
}

func TestCollides(t *testing.T) {
	m := corridorMaze(t)

	t.Run("SameCell", func(t *testing.T) {
		pos := maze.CellPosition{Row: 1, Col: 1}
		assert.True(t, Collides(m, pos, pos))
	})

	t.Run("AdjacentThroughOpenWall", func(t *testing.T) {
		assert.True(t, Collides(m, maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 0, Col: 1}))
		assert.True(t, Collides(m, maze.CellPosition{Row: 0, Col: 1}, maze.CellPosition{Row: 1, Col: 1}))
	})

	t.Run("AdjacentThroughClosedWall", func(t *testing.T) {
		// (1,0) and (1,1) share a closed wall: no hit through it.
		assert.False(t, Collides(m, maze.CellPosition{Row: 1, Col: 0}, maze.CellPosition{Row: 1, Col: 1}))
	})

	t.Run("DiagonalNeverCollides", func(t *testing.T) {
		assert.False(t, Collides(m, maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 1, Col: 1}))
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		assert.False(t, Collides(m, maze.CellPosition{Row: -1, Col: 0}, maze.CellPosition{Row: 0, Col: 0}))
		assert.False(t, Collides(m, maze.CellPosition{Row: 0, Col: 0}, maze.CellPosition{Row: 0, Col: 3}))
	})

	t.Run("Symmetric", func(t *testing.T) {
		for row := 0; row < m.Size; row++ {
			for col := 0; col < m.Size; col++ {
				a := maze.CellPosition{Row: row, Col: col}
				for _, delta := range maze.Directions {
					b := maze.CellPosition{Row: row + delta.Row, Col: col + delta.Col}
					assert.Equal(t, Collides(m, a, b), Collides(m, b, a), "asymmetric collision between %v and %v", a, b)
				}
			}
		}
	})
}
