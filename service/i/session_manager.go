package i

import (
	"github.com/beka-birhanu/mazebound/maze"
	"github.com/beka-birhanu/mazebound/sim"
	"github.com/google/uuid"
)

// SessionManager manages the lifecycle of live level sessions on behalf of
// the API layer.
type SessionManager interface {
	// CreateSession starts a new level session and its tick loop.
	CreateSession(level int) (uuid.UUID, error)

	// State returns a consistent snapshot of a session.
	State(id uuid.UUID) (sim.SessionSnapshot, error)

	// MazeGrid returns the wall grid of a session's level.
	MazeGrid(id uuid.UUID) ([][]maze.Cell, error)

	// Move applies one player step.
	Move(id uuid.UUID, direction string) error

	// Attack resolves a player attack, returning the banked reward and
	// whether anything was hit.
	Attack(id uuid.UUID) (int, bool, error)

	// Pause suspends a session; Resume lifts the pause.
	Pause(id uuid.UUID) error
	Resume(id uuid.UUID) error

	// End tears a session down and forgets it.
	End(id uuid.UUID) error

	// StopAll ends every live session.
	StopAll()
}
