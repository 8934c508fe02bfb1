package sim

import "github.com/beka-birhanu/mazebound/maze"

// Collides is the single interaction test shared by every combat and
// collection check: player-vs-agent, player-vs-collectible and
// player-vs-hazard all use it, so "can this interaction happen" never
// disagrees between subsystems.
//
// Two positions collide when they are the same cell, or orthogonally
// adjacent with the shared wall open. Adjacency through a closed wall never
// counts, which prevents hits through walls. The test is symmetric because
// the wall flags themselves are symmetric.
func Collides(m *maze.Maze, a, b maze.CellPosition) bool {
	if !m.InBound(a.Row, a.Col) || !m.InBound(b.Row, b.Col) {
		return false
	}
	if a == b {
		return true
	}
	if maze.ManhattanDistance(a, b) != 1 {
		return false
	}

	switch {
	case b.Row == a.Row-1:
		return m.CanStep(a, "North")
	case b.Row == a.Row+1:
		return m.CanStep(a, "South")
	case b.Col == a.Col+1:
		return m.CanStep(a, "East")
	default:
		return m.CanStep(a, "West")
	}
}
