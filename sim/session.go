/*
Package sim implements the simulation core of the grid-maze game: the agent
population and its behavior policies, the spawn queue, the event scheduler
and the per-level session that ties them together.

Everything in this package runs single-threaded from the session's Tick
entry point. "Concurrency" here means interleaved tick-driven timers, never
parallel access to the maze or the agent collections; the exported session
API takes the session lock so external callers (the host loop, the HTTP
surface) can drive it from their own goroutines.
*/
package sim

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/beka-birhanu/mazebound/config"
	"github.com/beka-birhanu/mazebound/maze"
	"github.com/beka-birhanu/mazebound/sim/i"
	"github.com/google/uuid"
)

// Session-related errors.
var (
	ErrSessionOver   = errors.New("session is no longer running")
	ErrSessionPaused = errors.New("session is paused")
)

// Timer names owned by the session itself.
const (
	timerComboDecay = "combo:decay"
)

// Event names reported by the session.
const (
	EventLevelWon  = "level_won"
	EventTimeUp    = "time_up"
	EventAgentKill = "agent_kill"
)

// Rewards assigned to maze cells on session start: common pellets worth
// one, rare ones worth five.
var defaultRewardModel = maze.RewardModel{RewardOne: 1, RewardTwo: 5, RewardTypeProb: 0.9}

// LevelSession is the explicitly constructed simulation context of one
// level. It owns the maze, the agent collections, the timers, the spawn
// queue and the event scheduler, and it defines their init/teardown
// lifecycle. There is no module-level state anywhere in the core.
type LevelSession struct {
	ID    uuid.UUID
	Level int

	m         *maze.Maze
	entities  *EntityManager
	scheduler *EventScheduler
	queue     *SpawnQueue
	timers    *TimerService

	tuning   *config.Tuning
	lt       config.LevelTuning
	tickRate int

	player      maze.CellPosition
	playerSpawn maze.CellPosition

	running bool
	paused  bool
	won     bool
	frozen  bool // global time freeze; agents hold still, the world keeps ticking

	score    int
	combo    int
	timeLeft uint64 // remaining level ticks; zero on untimed levels

	notifier i.Notifier
	effects  i.ScreenEffects
	logger   *log.Logger

	sync.Mutex
}

// SessionConfig holds configuration for creating a LevelSession.
type SessionConfig struct {
	Level    int
	TickRate int
	Tuning   *config.Tuning
	Notifier i.Notifier      // optional
	Effects  i.ScreenEffects // optional
	Logger   *log.Logger
}

// NewLevelSession generates the level maze, populates rewards and the
// initial agent population, and arms the event scheduler. The session
// starts running and unpaused.
func NewLevelSession(c *SessionConfig) (*LevelSession, error) {
	tickRate := c.TickRate
	if tickRate <= 0 {
		tickRate = 30
	}
	tuning := c.Tuning
	if tuning == nil {
		tuning = config.DefaultTuning()
	}

	lt := tuning.ForLevel(c.Level)
	m, err := maze.New(lt.MazeSize)
	if err != nil {
		return nil, fmt.Errorf("generating level maze: %w", err)
	}
	if err := m.PopulateRewards(defaultRewardModel); err != nil {
		return nil, fmt.Errorf("populating rewards: %w", err)
	}

	s := &LevelSession{
		ID:          uuid.New(),
		Level:       c.Level,
		m:           m,
		timers:      NewTimerService(),
		tuning:      tuning,
		lt:          lt,
		tickRate:    tickRate,
		player:      maze.CellPosition{Row: 0, Col: 0}, // the entrance cell
		playerSpawn: maze.CellPosition{Row: 0, Col: 0},
		running:     true,
		combo:       1,
		timeLeft:    uint64(lt.TimeLimitSec) * uint64(tickRate),
		notifier:    c.Notifier,
		effects:     c.Effects,
		logger:      c.Logger,
	}

	// The player's start cell carries no collectible.
	s.m.TakeReward(s.player)

	s.entities = NewEntityManager(&EntityManagerConfig{Maze: m, Tuning: tuning, Logger: c.Logger})
	s.entities.PopulateLevel(lt, s.player)
	s.entities.ClearSafeZone(s.playerSpawn, lt.MinPlayerDistance/2)

	s.queue = NewSpawnQueue(&SpawnQueueConfig{Spawn: s.entities.SpawnFromTask, Logger: c.Logger})
	s.scheduler = newEventScheduler(s)
	s.scheduler.Start()

	return s, nil
}

// Tick advances the session by one simulation step. dt is the frame delta
// in seconds, used only for render interpolation. Within one tick, timers
// fire first, then the spawn queue drains one batch, then the agents
// update, so by the time the host polls collisions, a same-tick spawn is
// already live.
//
// Timers keep advancing while paused; their callbacks re-check the pause
// guard at fire time and suppress themselves, which is what keeps a
// pause→resume from replaying stale intent.
func (s *LevelSession) Tick(dt float64) {
	s.Lock()
	defer s.Unlock()

	if !s.running {
		return
	}

	s.timers.Advance()
	if s.paused {
		return
	}

	s.queue.DrainOneBatch()
	s.entities.UpdateAll(s.player, s.scheduler.AggroBonus(), s.frozen)
	s.entities.InterpolateAll(dt)

	if s.timeLeft > 0 {
		s.timeLeft--
		if s.timeLeft == 0 {
			s.running = false
			s.notify(EventTimeUp, "Time is up!")
		}
	}
}

// MovePlayer validates and applies one player step. The legality test is
// the same maze.CanStep every agent uses, so the player and the agents can
// never disagree about a wall. A successful move collects the cell's
// reward, feeds the combo, and gives the transient-event roll its chance.
func (s *LevelSession) MovePlayer(direction string) error {
	s.Lock()
	defer s.Unlock()

	if !s.running {
		return ErrSessionOver
	}
	if s.paused {
		return ErrSessionPaused
	}

	next, err := s.m.Step(s.player, direction)
	if err != nil {
		return err
	}
	s.player = next

	if reward := s.m.TakeReward(s.player); reward > 0 {
		s.score += reward * s.combo
		s.combo++
		s.timers.After(timerComboDecay, s.ticks(s.tuning.Events.ComboDecaySec), s.decayCombo)
	}

	s.scheduler.OnPlayerMove()

	if s.m.TotalReward() == 0 {
		s.win()
	}
	return nil
}

// Attack resolves a player attack through the shared collision test. The
// first colliding agent is retired and its reward banked. It returns the
// reward and whether anything was hit.
func (s *LevelSession) Attack() (int, bool) {
	s.Lock()
	defer s.Unlock()

	if !s.running || s.paused {
		return 0, false
	}

	agent := s.entities.CollidingAgent(s.player)
	if agent == nil {
		return 0, false
	}
	s.entities.Retire(agent.ID)
	s.score += agent.Profile.Reward
	s.notify(EventAgentKill, fmt.Sprintf("%s down! +%d", agent.Profile.Kind, agent.Profile.Reward))
	return agent.Profile.Reward, true
}

// PlayerHit reports whether any live agent currently collides with the
// player. The host loop polls this every frame after Tick.
func (s *LevelSession) PlayerHit() bool {
	s.Lock()
	defer s.Unlock()
	return s.entities.CollidingAgent(s.player) != nil
}

// Pause suspends gameplay. Timers continue to be evaluated but their
// callbacks suppress themselves through the fire-time guards.
func (s *LevelSession) Pause() {
	s.Lock()
	defer s.Unlock()
	s.paused = true
}

// Resume lifts a pause.
func (s *LevelSession) Resume() {
	s.Lock()
	defer s.Unlock()
	s.paused = false
}

// SetTimeFreeze toggles the global time freeze: agents hold still while the
// rest of the simulation keeps ticking.
func (s *LevelSession) SetTimeFreeze(frozen bool) {
	s.Lock()
	defer s.Unlock()
	s.frozen = frozen
}

// Close tears the session down: every outstanding timer is cancelled
// unconditionally, queued spawns are dropped and every agent is disposed.
// A closed session stays closed; calling Close again is a no-op.
func (s *LevelSession) Close() {
	s.Lock()
	defer s.Unlock()

	s.running = false
	s.scheduler.stop()
	s.timers.CancelAll()
	s.queue.Clear()
	s.entities.DisposeAll()
}

// Running reports whether the session is still live (not won, lost or
// closed).
func (s *LevelSession) Running() bool {
	s.Lock()
	defer s.Unlock()
	return s.running
}

// guardsPass re-checks the conditions every scheduled event must hold at
// fire time: the level is running, unpaused and not yet won.
func (s *LevelSession) guardsPass() bool {
	return s.running && !s.paused && !s.won
}

// win ends the level in victory.
func (s *LevelSession) win() {
	s.won = true
	s.running = false
	s.notify(EventLevelWon, "Maze cleared!")
}

// decayCombo resets the combo multiplier after a quiet spell. Like every
// scheduled callback it re-checks the guards at fire time; a decay due
// while paused is deferred by a full interval instead of punishing the
// player for the pause.
func (s *LevelSession) decayCombo() {
	if !s.guardsPass() {
		s.timers.After(timerComboDecay, s.ticks(s.tuning.Events.ComboDecaySec), s.decayCombo)
		return
	}
	s.combo = 1
}

// addBonusTime extends the level countdown. Untimed levels ignore it.
func (s *LevelSession) addBonusTime(seconds float64) {
	if s.timeLeft == 0 {
		return
	}
	s.timeLeft += uint64(seconds * float64(s.tickRate))
}

// ticks converts a wall-clock duration in seconds to simulation ticks at
// the session's tick rate, never returning zero.
func (s *LevelSession) ticks(seconds float64) uint64 {
	t := uint64(seconds * float64(s.tickRate))
	if t == 0 {
		t = 1
	}
	return t
}

// notify forwards an event transition to the optional UI collaborator.
// Fire-and-forget: the simulation never depends on the outcome.
func (s *LevelSession) notify(event, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(event, message)
}
