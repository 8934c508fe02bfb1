package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/mazebound/config"
	"github.com/beka-birhanu/mazebound/maze"
	"github.com/beka-birhanu/mazebound/sim"
	simi "github.com/beka-birhanu/mazebound/sim/i"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no such session")

// SessionManager owns every live level session. Each session gets its own
// tick goroutine driving the simulation at the configured rate; the
// goroutine stops on its own when the level ends and on End/StopAll.
type SessionManager struct {
	sessions map[uuid.UUID]*sessionRunner
	tickRate int
	tuning   *config.Tuning
	notifier simi.Notifier
	effects  simi.ScreenEffects
	logger   *log.Logger
	sync.RWMutex
}

// sessionRunner pairs a session with its tick-loop stop channel.
type sessionRunner struct {
	session *sim.LevelSession
	stop    chan struct{}
	once    sync.Once
}

func (r *sessionRunner) halt() {
	r.once.Do(func() { close(r.stop) })
}

// Config holds configuration for creating a SessionManager.
type Config struct {
	TickRate int
	Tuning   *config.Tuning
	Notifier simi.Notifier      // optional; defaults to a LogNotifier
	Effects  simi.ScreenEffects // optional
	Logger   *log.Logger
}

// NewSessionManager creates a SessionManager with no live sessions.
func NewSessionManager(c *Config) (*SessionManager, error) {
	notifier := c.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(c.Logger)
	}
	return &SessionManager{
		sessions: make(map[uuid.UUID]*sessionRunner),
		tickRate: c.TickRate,
		tuning:   c.Tuning,
		notifier: notifier,
		effects:  c.Effects,
		logger:   c.Logger,
	}, nil
}

// CreateSession starts a new level session and the goroutine that ticks it.
func (sm *SessionManager) CreateSession(level int) (uuid.UUID, error) {
	session, err := sim.NewLevelSession(&sim.SessionConfig{
		Level:    level,
		TickRate: sm.tickRate,
		Tuning:   sm.tuning,
		Notifier: sm.notifier,
		Effects:  sm.effects,
		Logger:   sm.logger,
	})
	if err != nil {
		sm.logger.Printf("%s[ERROR]%s creating session for level %d: %s", config.LogErrorColor, config.LogColorReset, level, err)
		return uuid.Nil, err
	}

	runner := &sessionRunner{session: session, stop: make(chan struct{})}
	sm.Lock()
	sm.sessions[session.ID] = runner
	sm.Unlock()

	go sm.run(runner)
	sm.logger.Printf("%s[INFO]%s started level %d session: %s", config.LogInfoColor, config.LogColorReset, level, session.ID)
	return session.ID, nil
}

// run drives one session's tick loop until the level ends or the runner is
// halted. The measured frame delta feeds render interpolation only; the
// simulation itself advances one discrete tick per iteration regardless of
// how late the ticker fired.
func (sm *SessionManager) run(r *sessionRunner) {
	interval := time.Second / time.Duration(sm.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.session.Tick(dt)
			if !r.session.Running() {
				sm.logger.Printf("%s[INFO]%s session ended: %s", config.LogInfoColor, config.LogColorReset, r.session.ID)
				return
			}
		}
	}
}

// State returns a snapshot of a live session.
func (sm *SessionManager) State(id uuid.UUID) (sim.SessionSnapshot, error) {
	r, err := sm.runner(id)
	if err != nil {
		return sim.SessionSnapshot{}, err
	}
	return r.session.Snapshot(), nil
}

// MazeGrid returns the wall grid of a session's level.
func (sm *SessionManager) MazeGrid(id uuid.UUID) ([][]maze.Cell, error) {
	r, err := sm.runner(id)
	if err != nil {
		return nil, err
	}
	return r.session.MazeSnapshot(), nil
}

// Move applies one player step to a session.
func (sm *SessionManager) Move(id uuid.UUID, direction string) error {
	r, err := sm.runner(id)
	if err != nil {
		return err
	}
	return r.session.MovePlayer(direction)
}

// Attack resolves a player attack in a session.
func (sm *SessionManager) Attack(id uuid.UUID) (int, bool, error) {
	r, err := sm.runner(id)
	if err != nil {
		return 0, false, err
	}
	reward, hit := r.session.Attack()
	return reward, hit, nil
}

// Pause suspends a session.
func (sm *SessionManager) Pause(id uuid.UUID) error {
	r, err := sm.runner(id)
	if err != nil {
		return err
	}
	r.session.Pause()
	return nil
}

// Resume lifts a session's pause.
func (sm *SessionManager) Resume(id uuid.UUID) error {
	r, err := sm.runner(id)
	if err != nil {
		return err
	}
	r.session.Resume()
	return nil
}

// End tears a session down and forgets it.
func (sm *SessionManager) End(id uuid.UUID) error {
	sm.Lock()
	r, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	sm.Unlock()

	if !ok {
		return ErrNoSession
	}
	r.halt()
	r.session.Close()
	sm.logger.Printf("%s[INFO]%s closed session: %s", config.LogInfoColor, config.LogColorReset, id)
	return nil
}

// StopAll ends every live session. Called on shutdown.
func (sm *SessionManager) StopAll() {
	sm.Lock()
	runners := make([]*sessionRunner, 0, len(sm.sessions))
	for id, r := range sm.sessions {
		runners = append(runners, r)
		delete(sm.sessions, id)
	}
	sm.Unlock()

	for _, r := range runners {
		r.halt()
		r.session.Close()
	}
}

// runner looks up the runner of a live session.
func (sm *SessionManager) runner(id uuid.UUID) (*sessionRunner, error) {
	sm.RLock()
	defer sm.RUnlock()
	r, ok := sm.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	return r, nil
}
