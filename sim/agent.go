package sim

import (
	"math"

	"github.com/beka-birhanu/mazebound/maze"
	"github.com/google/uuid"
)

// Interpolation constants. Frame delta is clamped so a single slow frame
// cannot turn into a teleport-like jump, and a render position that diverged
// beyond snapDivergence cells (lag spike, missed frames) snaps straight to
// the logical cell instead of visibly crossing the level.
const (
	maxFrameDelta  = 0.05 // seconds of frame delta used per interpolation step
	renderSpeed    = 5.0  // cells per second toward the logical cell
	snapDivergence = 1.5  // cells of drift tolerated before snapping
)

// Agent is one roaming entity on the grid. Its integer grid position is the
// authoritative logical position; the continuous render position is derived
// from it and only ever interpolates toward it. Movement cadence is
// tick-denominated and therefore independent of frame rate.
type Agent struct {
	ID      uuid.UUID
	Profile AgentProfile
	Tag     string // cosmetic tag forwarded to the renderer

	m        *maze.Maze
	strategy MovementStrategy

	pos              maze.CellPosition
	renderX, renderY float64 // continuous position in cell units (X=col, Y=row)
	countdown        int
	state            BehaviorState
	disposed         bool
}

// AgentConfig holds configuration for creating an Agent.
type AgentConfig struct {
	Maze     *maze.Maze
	Profile  AgentProfile
	Pos      maze.CellPosition
	Strategy MovementStrategy // defaults to GreedyStrategy
	Tag      string
}

// NewAgent creates an agent at the given position, reading walls from the
// shared maze.
func NewAgent(c *AgentConfig) *Agent {
	strategy := c.Strategy
	if strategy == nil {
		strategy = GreedyStrategy{}
	}
	return &Agent{
		ID:        uuid.New(),
		Profile:   c.Profile,
		Tag:       c.Tag,
		m:         c.Maze,
		strategy:  strategy,
		pos:       c.Pos,
		renderX:   float64(c.Pos.Col),
		renderY:   float64(c.Pos.Row),
		countdown: c.Profile.MoveEveryTicks,
		state:     Patrol,
	}
}

// Pos returns the agent's authoritative grid position.
func (a *Agent) Pos() maze.CellPosition {
	return a.pos
}

// RenderPos returns the continuous render position in cell units
// (x is the column axis, y the row axis).
func (a *Agent) RenderPos() (float64, float64) {
	return a.renderX, a.renderY
}

// State returns the current behavior state.
func (a *Agent) State() BehaviorState {
	return a.state
}

// CanStepTo reports whether one step in the given direction is legal for
// this agent. It delegates to the shared maze legality test, the same one
// the player's movement uses.
func (a *Agent) CanStepTo(direction string) bool {
	return a.m.CanStep(a.pos, direction)
}

// CollidesWith reports whether the agent interacts with the given grid
// position: same cell, or adjacent with the shared wall open.
func (a *Agent) CollidesWith(pos maze.CellPosition) bool {
	return Collides(a.m, a.pos, pos)
}

// Update runs one simulation tick: the move countdown is decremented and,
// when it reaches zero, reset before one behavior step is evaluated against
// the target. Disposed agents are a no-op.
func (a *Agent) Update(target maze.CellPosition, aggroBonus int) {
	if a.disposed {
		return
	}

	a.countdown--
	if a.countdown > 0 {
		return
	}
	a.countdown = a.Profile.MoveEveryTicks

	if maze.ManhattanDistance(a.pos, target) <= a.Profile.AggroRadius+aggroBonus {
		a.state = a.Profile.Alerted
	} else {
		a.state = Patrol
	}

	if next, ok := a.strategy.NextStep(a.m, a.pos, target, a.state); ok {
		a.pos = next
	}
}

// Interpolate advances the render position toward the logical cell. dt is
// the frame delta in seconds, clamped to maxFrameDelta before use.
func (a *Agent) Interpolate(dt float64) {
	if a.disposed {
		return
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}

	targetX, targetY := float64(a.pos.Col), float64(a.pos.Row)
	dx, dy := targetX-a.renderX, targetY-a.renderY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	step := renderSpeed * dt
	if dist > snapDivergence || step >= dist {
		a.renderX, a.renderY = targetX, targetY
		return
	}
	a.renderX += dx / dist * step
	a.renderY += dy / dist * step
}

// Relocate forcibly moves the agent, snapping both the logical and the
// render position synchronously. An interpolated catch-up across the level
// would read as the entity being in two places, so there is none.
func (a *Agent) Relocate(pos maze.CellPosition) {
	a.pos = pos
	a.renderX = float64(pos.Col)
	a.renderY = float64(pos.Row)
}

// Dispose marks the agent as retired. Disposing twice, or updating after
// disposal, is a safe no-op.
func (a *Agent) Dispose() {
	a.disposed = true
}

// Disposed reports whether the agent has been retired.
func (a *Agent) Disposed() bool {
	return a.disposed
}
