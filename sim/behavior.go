package sim

import (
	"math/rand"

	"github.com/beka-birhanu/mazebound/maze"
)

// MovementStrategy decides the next step of an agent. Implementations must
// consult the shared maze for wall legality and never a cached copy, so that
// agents and the player can never disagree about a wall.
//
// The greedy strategy is the default; smarter pathing can be plugged in
// behind the same interface without touching the agent contract.
type MovementStrategy interface {
	// NextStep returns the position the agent should move to this step and
	// whether any move is possible at all.
	NextStep(m *maze.Maze, from, target maze.CellPosition, state BehaviorState) (maze.CellPosition, bool)
}

// GreedyStrategy implements the greedy chase/flee/patrol policies. Chasing
// prefers the axis with the greater absolute distance to the target and
// falls back to the other axis when blocked; with both blocked the agent
// holds its cell for the step. There is no backtracking search, so an agent
// can stall at a dead end relative to its target. That trade-off keeps the
// per-step cost constant at agent-pool scale.
type GreedyStrategy struct{}

// NextStep implements MovementStrategy.
func (GreedyStrategy) NextStep(m *maze.Maze, from, target maze.CellPosition, state BehaviorState) (maze.CellPosition, bool) {
	switch state {
	case Chasing:
		return greedyStep(m, from, target.Row-from.Row, target.Col-from.Col)
	case Fleeing:
		// Mirror of chasing with negated deltas; ties commit to the first
		// resolvable axis.
		return greedyStep(m, from, from.Row-target.Row, from.Col-target.Col)
	default:
		return patrolStep(m, from)
	}
}

// greedyStep picks the axis with greater |delta| first, then the other.
func greedyStep(m *maze.Maze, from maze.CellPosition, deltaRow, deltaCol int) (maze.CellPosition, bool) {
	primary := rowDirection(deltaRow)
	secondary := colDirection(deltaCol)
	if abs(deltaCol) > abs(deltaRow) {
		primary, secondary = secondary, primary
	}

	for _, dir := range []string{primary, secondary} {
		if dir == "" {
			continue
		}
		if next, err := m.Step(from, dir); err == nil {
			return next, true
		}
	}
	return from, false
}

// patrolStep wanders one step in a uniformly random legal direction.
func patrolStep(m *maze.Maze, from maze.CellPosition) (maze.CellPosition, bool) {
	var open []string
	for _, dir := range maze.DirectionNames {
		if m.CanStep(from, dir) {
			open = append(open, dir)
		}
	}
	if len(open) == 0 {
		return from, false
	}
	next, err := m.Step(from, open[rand.Intn(len(open))])
	if err != nil {
		return from, false
	}
	return next, true
}

func rowDirection(delta int) string {
	switch {
	case delta < 0:
		return "North"
	case delta > 0:
		return "South"
	default:
		return ""
	}
}

func colDirection(delta int) string {
	switch {
	case delta < 0:
		return "West"
	case delta > 0:
		return "East"
	default:
		return ""
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
