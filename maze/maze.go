/*
Package maze provides tools for creating and managing square grid mazes.

It defines the `Maze` structure, composed of `Cell` objects that include wall
configurations and optional rewards.

Mazes are generated with randomized depth-first backtracking, which yields a
perfect maze: every cell is reachable and exactly one path exists between any
two cells. The package also includes a breadth-first solvability check, the
single wall-legality test shared by player and agent movement, reward
assignment, and ASCII visualization.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Directions maps each direction name to its row/col delta.
var Directions = map[string]CellPosition{
	"North": {Row: -1, Col: 0},
	"South": {Row: 1, Col: 0},
	"East":  {Row: 0, Col: 1},
	"West":  {Row: 0, Col: -1},
}

// DirectionNames lists the four direction names in a stable order.
var DirectionNames = []string{"North", "South", "East", "West"}

var (
	ErrInvalidDimension = errors.New("maze dimension must be at least one")
	ErrInvalidMove      = errors.New("invalid move request")
)

// Maze represents a square maze consisting of cells with walls and optional rewards.
type Maze struct {
	Size int      // Size of the maze (number of rows and columns)
	Grid [][]Cell // 2D grid of cells forming the maze
}

// New initializes a new square maze of the given size and generates its
// layout with randomized depth-first backtracking. After generation the
// entrance (north wall of the top-left cell) and the exit (south wall of the
// bottom-right cell) are carved into the outer boundary.
func New(size int) (*Maze, error) {
	if size < 1 {
		return nil, ErrInvalidDimension
	}

	grid := make([][]Cell, size)
	for i := range grid {
		grid[i] = make([]Cell, size)
		for j := range grid[i] {
			grid[i][j] = Cell{
				NorthWall: true,
				SouthWall: true,
				EastWall:  true,
				WestWall:  true,
				Reward:    0,
			}
		}
	}

	m := &Maze{Size: size, Grid: grid}
	m.generate()
	m.carveBoundary()
	return m, nil
}

// CellAt returns a pointer to the cell at the given position.
// The position must be in bounds.
func (m *Maze) CellAt(pos CellPosition) *Cell {
	return &m.Grid[pos.Row][pos.Col]
}

// InBound reports whether the given row and column fall inside the maze.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Size && col >= 0 && col < m.Size
}

// neighbors returns the moves from pos to every in-bound orthogonal neighbor.
func (m *Maze) neighbors(pos CellPosition) []Move {
	var result []Move
	for _, dir := range DirectionNames {
		delta := Directions[dir]
		to := CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
		if m.InBound(to.Row, to.Col) {
			result = append(result, Move{From: pos, To: to, Direction: dir})
		}
	}
	return result
}

// openWall knocks down the shared wall pair of a move, keeping the wall
// flags of both cells symmetric.
func (m *Maze) openWall(move Move) {
	from := &m.Grid[move.From.Row][move.From.Col]
	to := &m.Grid[move.To.Row][move.To.Col]

	switch move.Direction {
	case "North":
		from.NorthWall = false
		to.SouthWall = false
	case "South":
		from.SouthWall = false
		to.NorthWall = false
	case "East":
		from.EastWall = false
		to.WestWall = false
	case "West":
		from.WestWall = false
		to.EastWall = false
	}
}

// generate runs randomized depth-first backtracking from a random start
// cell. The visit stack empties only when every cell has been visited, so
// the resulting maze is a spanning tree of the grid: fully connected, with
// exactly one path between any two cells.
func (m *Maze) generate() {
	visited := make(map[CellPosition]struct{}, m.Size*m.Size)
	start := CellPosition{Row: rand.Intn(m.Size), Col: rand.Intn(m.Size)}
	visited[start] = struct{}{}
	stack := []CellPosition{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		var candidates []Move
		for _, move := range m.neighbors(current) {
			if _, seen := visited[move.To]; !seen {
				candidates = append(candidates, move)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1] // backtrack
			continue
		}

		move := candidates[rand.Intn(len(candidates))]
		m.openWall(move)
		visited[move.To] = struct{}{}
		stack = append(stack, move.To)
	}
}

// carveBoundary opens the maze to the outside: the entrance at the top-left
// cell and the exit at the bottom-right cell. These are boundary walls, so
// they have no neighbor pair to keep symmetric.
func (m *Maze) carveBoundary() {
	m.Grid[0][0].NorthWall = false
	m.Grid[m.Size-1][m.Size-1].SouthWall = false
}

// CanStep reports whether a single step from pos in the given direction is
// legal: the destination must be in bounds and the shared wall must be open.
// This is the single source of truth for movement legality, shared by the
// player and every agent kind.
func (m *Maze) CanStep(pos CellPosition, direction string) bool {
	delta, ok := Directions[direction]
	if !ok {
		return false
	}

	if !m.InBound(pos.Row, pos.Col) {
		return false
	}
	to := CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
	if !m.InBound(to.Row, to.Col) {
		return false
	}

	from := m.Grid[pos.Row][pos.Col]
	dest := m.Grid[to.Row][to.Col]
	switch direction {
	case "North":
		return !from.NorthWall && !dest.SouthWall
	case "South":
		return !from.SouthWall && !dest.NorthWall
	case "East":
		return !from.EastWall && !dest.WestWall
	case "West":
		return !from.WestWall && !dest.EastWall
	default:
		return false
	}
}

// Step validates a move from pos in the given direction and returns the
// destination position. It returns ErrInvalidMove when the step is illegal.
func (m *Maze) Step(pos CellPosition, direction string) (CellPosition, error) {
	if !m.CanStep(pos, direction) {
		return CellPosition{}, ErrInvalidMove
	}
	delta := Directions[direction]
	return CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}, nil
}

// Solvable reports whether goal is reachable from start following only open
// walls, using breadth-first search. Output of New always satisfies this for
// any pair of cells; the check exists to validate hand-authored or mutated
// grids.
func (m *Maze) Solvable(start, goal CellPosition) bool {
	if !m.InBound(start.Row, start.Col) || !m.InBound(goal.Row, goal.Col) {
		return false
	}
	if start == goal {
		return true
	}

	visited := make(map[CellPosition]struct{}, m.Size*m.Size)
	visited[start] = struct{}{}
	queue := []CellPosition{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range DirectionNames {
			if !m.CanStep(current, dir) {
				continue
			}
			delta := Directions[dir]
			next := CellPosition{Row: current.Row + delta.Row, Col: current.Col + delta.Col}
			if next == goal {
				return true
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return false
}

// OpenPairCount returns the number of open internal wall pairs. For a
// perfect maze of N cells this is exactly N-1 (spanning tree property).
// Boundary openings such as the entrance and exit are not pairs and are not
// counted.
func (m *Maze) OpenPairCount() int {
	count := 0
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			cell := m.Grid[row][col]
			if col+1 < m.Size && !cell.EastWall {
				count++
			}
			if row+1 < m.Size && !cell.SouthWall {
				count++
			}
		}
	}
	return count
}

// String renders the maze as ASCII art, walls drawn with +, - and |, each
// cell interior showing its collectible reward when one is present. Handy
// for eyeballing generated or hand-authored grids.
func (m *Maze) String() string {
	var b strings.Builder

	b.WriteString("+")
	b.WriteString(strings.Repeat("---+", m.Size))
	b.WriteString("\n")

	for row := 0; row < m.Size; row++ {
		b.WriteString("|")
		for col := 0; col < m.Size; col++ {
			cell := m.Grid[row][col]
			if cell.Reward != 0 {
				fmt.Fprintf(&b, "%2d ", cell.Reward)
			} else {
				b.WriteString("   ")
			}
			if cell.EastWall {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for col := 0; col < m.Size; col++ {
			if m.Grid[row][col].SouthWall {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
