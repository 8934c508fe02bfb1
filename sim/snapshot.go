package sim

import (
	"github.com/beka-birhanu/mazebound/maze"
	"github.com/google/uuid"
)

// AgentSnapshot is the per-agent view handed to external collaborators: the
// authoritative grid coordinates plus the continuous render position the
// renderer interpolates toward.
type AgentSnapshot struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Tag     string    `json:"tag,omitempty"`
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	RenderX float64   `json:"render_x"`
	RenderY float64   `json:"render_y"`
	State   string    `json:"state"`
}

// PositionSnapshot is a plain grid coordinate.
type PositionSnapshot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SessionSnapshot is one consistent view of the session state, taken under
// the session lock.
type SessionSnapshot struct {
	ID             uuid.UUID        `json:"id"`
	Level          int              `json:"level"`
	Player         PositionSnapshot `json:"player"`
	Agents         []AgentSnapshot  `json:"agents"`
	Score          int              `json:"score"`
	Combo          int              `json:"combo"`
	TimeLeftSec    float64          `json:"time_left_sec"`
	RewardsLeft    int              `json:"rewards_left"`
	DarknessActive bool             `json:"darkness_active"`
	DarknessSec    float64          `json:"darkness_sec"` // seconds the running darkness has been active
	FogDensity     float64          `json:"fog_density"`
	Running        bool             `json:"running"`
	Paused         bool             `json:"paused"`
	Won            bool             `json:"won"`
}

// Snapshot builds a consistent snapshot of the session.
func (s *LevelSession) Snapshot() SessionSnapshot {
	s.Lock()
	defer s.Unlock()

	agents := s.entities.All()
	snaps := make([]AgentSnapshot, 0, len(agents))
	for _, a := range agents {
		x, y := a.RenderPos()
		snaps = append(snaps, AgentSnapshot{
			ID:      a.ID,
			Kind:    string(a.Profile.Kind),
			Tag:     a.Tag,
			Row:     a.Pos().Row,
			Col:     a.Pos().Col,
			RenderX: x,
			RenderY: y,
			State:   a.State().String(),
		})
	}

	return SessionSnapshot{
		ID:             s.ID,
		Level:          s.Level,
		Player:         PositionSnapshot{Row: s.player.Row, Col: s.player.Col},
		Agents:         snaps,
		Score:          s.score,
		Combo:          s.combo,
		TimeLeftSec:    float64(s.timeLeft) / float64(s.tickRate),
		RewardsLeft:    s.m.TotalReward(),
		DarknessActive: s.scheduler.DarknessActive(),
		DarknessSec:    float64(s.scheduler.DarknessTicks()) / float64(s.tickRate),
		FogDensity:     s.scheduler.FogDensity(),
		Running:        s.running,
		Paused:         s.paused,
		Won:            s.won,
	}
}

// MazeSnapshot returns a deep copy of the wall grid for the renderer to
// build its geometry from. Walls never change after generation; the copy
// exists because the reward values do.
func (s *LevelSession) MazeSnapshot() [][]maze.Cell {
	s.Lock()
	defer s.Unlock()

	grid := make([][]maze.Cell, s.m.Size)
	for row := range grid {
		grid[row] = make([]maze.Cell, s.m.Size)
		copy(grid[row], s.m.Grid[row])
	}
	return grid
}
