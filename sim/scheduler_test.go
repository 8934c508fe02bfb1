package sim

import (
	"testing"

	"github.com/beka-birhanu/mazebound/config"
	"github.com/stretchr/testify/assert"
)

// recordingNotifier collects event names for assertions.
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(event, message string) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) count(event string) int {
	total := 0
	for _, e := range n.events {
		if e == event {
			total++
		}
	}
	return total
}

// recordingEffects captures the last screen-effect values pushed.
type recordingEffects struct {
	darkness bool
	fog      float64
}

func (e *recordingEffects) SetDarkness(on bool)     { e.darkness = on }
func (e *recordingEffects) SetFogDensity(d float64) { e.fog = d }

// eventTuning compresses the event timeline to a handful of ticks. The
// sessions under test run at one tick per second, so the second-denominated
// delays below are tick counts as well.
func eventTuning() *config.Tuning {
	tuning := config.DefaultTuning()
	tuning.Events.DarknessInitialDelaySec = 2
	tuning.Events.DarknessIntervalSec = 6
	tuning.Events.DarknessDurationSec = 3
	tuning.Events.HordeCheckDelaySec = 1
	tuning.Events.FogPulseSec = 1
	tuning.Events.SurgeDurationSec = 2
	tuning.Events.RandomEventChance = 0 // keep player moves deterministic
	tuning.Events.MinEventLevel = 1
	tuning.Events.MinHordeLevel = 1
	tuning.Levels = []config.LevelTuning{{
		MazeSize:          10,
		ZombieCount:       2,
		HordeSize:         7,
		MinPlayerDistance: 5,
	}}
	return tuning
}

func newEventSession(t *testing.T, tuning *config.Tuning, notifier *recordingNotifier, effects *recordingEffects) *LevelSession {
	cfg := &SessionConfig{Level: 1, TickRate: 1, Tuning: tuning}
	if notifier != nil {
		cfg.Notifier = notifier
	}
	if effects != nil {
		cfg.Effects = effects
	}
	s, err := NewLevelSession(cfg)
	assert.NoError(t, err)
	return s
}

func tick(s *LevelSession, n int) {
	for i := 0; i < n; i++ {
		s.Tick(0.016)
	}
}

func TestDarknessCycle(t *testing.T) {
	notifier := &recordingNotifier{}
	effects := &recordingEffects{}
	tuning := eventTuning()
	s := newEventSession(t, tuning, notifier, effects)
	defer s.Close()

	tick(s, 1)
	assert.False(t, s.scheduler.DarknessActive(), "darkness started before its initial delay")
	assert.Equal(t, uint64(0), s.scheduler.DarknessTicks())

	tick(s, 1) // initial delay elapsed
	assert.True(t, s.scheduler.DarknessActive())
	assert.True(t, effects.darkness)
	assert.Equal(t, 1, notifier.count(EventDarknessStart))
	assert.InDelta(t, tuning.Events.FogBaseDensity*tuning.Events.FogDarknessMultiplier, s.scheduler.FogDensity(), 1e-9)

	tick(s, 1)
	assert.Equal(t, uint64(1), s.scheduler.DarknessTicks(), "darkness age did not track the tick clock")
	assert.InDelta(t, 1.0, s.Snapshot().DarknessSec, 1e-9)

	tick(s, 2) // fixed duration elapsed
	assert.False(t, s.scheduler.DarknessActive())
	assert.False(t, effects.darkness)
	assert.Equal(t, 1, notifier.count(EventDarknessEnd))
	assert.InDelta(t, tuning.Events.FogBaseDensity, s.scheduler.FogDensity(), 1e-9, "fog density was not restored")
	assert.False(t, s.timers.Active(timerFogPulse), "fog pulse survived the darkness end")
	assert.True(t, s.timers.Active(timerDarknessCycle), "recurring cycle was not re-armed")
}

func TestDarknessSuppressedWhilePaused(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newEventSession(t, eventTuning(), notifier, nil)
	defer s.Close()

	tick(s, 1)
	s.Pause()

	// The trigger tick arrives while paused: the timer still fires, the
	// fire-time guard suppresses the activation, and the recurrence stays
	// armed for the next cycle.
	tick(s, 2)
	assert.False(t, s.scheduler.DarknessActive(), "darkness activated while paused")
	assert.Equal(t, 0, notifier.count(EventDarknessStart))
	assert.True(t, s.timers.Active(timerDarknessCycle), "suppressed activation killed the cycle")

	s.Resume()
	tick(s, 1)
	assert.False(t, s.scheduler.DarknessActive(), "resume replayed the suppressed activation")

	// The next scheduled cycle activates normally.
	tick(s, 5)
	assert.True(t, s.scheduler.DarknessActive())
	assert.Equal(t, 1, notifier.count(EventDarknessStart))
}

func TestHordeSpawn(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newEventSession(t, eventTuning(), notifier, nil)
	defer s.Close()

	before := s.entities.CollectionCount(CollectionHorde)
	assert.Equal(t, 0, before)

	tick(s, 2) // darkness starts
	tick(s, 1) // horde check fires and enqueues

	assert.Equal(t, 1, notifier.count(EventHordeSpawned))
	assert.Equal(t, SpawnBatchSize, s.entities.CollectionCount(CollectionHorde), "spawn queue drained more than one batch this tick")

	// Seven queued agents materialize two per tick.
	tick(s, 3)
	assert.Equal(t, 7, s.entities.CollectionCount(CollectionHorde))

	// Composition: one boss, size/3 dogs, zombies for the rest.
	kinds := map[AgentKind]int{}
	for _, a := range s.entities.All() {
		if a.Tag == "darkness_horde" {
			kinds[a.Profile.Kind]++
		}
	}
	assert.Equal(t, 1, kinds[AgentBoss])
	assert.Equal(t, 2, kinds[AgentDog])
	assert.Equal(t, 4, kinds[AgentZombie])

	// No second horde inside the same cycle.
	tick(s, 1)
	assert.Equal(t, 1, notifier.count(EventHordeSpawned))
}

func TestHordeLevelGate(t *testing.T) {
	tuning := eventTuning()
	tuning.Events.MinHordeLevel = 5 // darkness allowed at level 1, hordes not
	notifier := &recordingNotifier{}
	s := newEventSession(t, tuning, notifier, nil)
	defer s.Close()

	tick(s, 7)
	assert.Equal(t, 1, notifier.count(EventDarknessStart))
	assert.Equal(t, 0, notifier.count(EventHordeSpawned))
	assert.Equal(t, 0, s.entities.CollectionCount(CollectionHorde))
}

func TestFogPulse(t *testing.T) {
	effects := &recordingEffects{}
	tuning := eventTuning()
	s := newEventSession(t, tuning, nil, effects)
	defer s.Close()

	tick(s, 2) // darkness starts
	tick(s, 1) // first pulse
	assert.InDelta(t, tuning.Events.FogPulseMax, s.scheduler.FogDensity(), 1e-9)

	tick(s, 1) // pulse swings back
	assert.InDelta(t, tuning.Events.FogPulseMin, s.scheduler.FogDensity(), 1e-9)
}

func TestSurge(t *testing.T) {
	notifier := &recordingNotifier{}
	tuning := eventTuning()
	s := newEventSession(t, tuning, notifier, nil)
	defer s.Close()

	s.Lock()
	s.scheduler.startSurge()
	s.Unlock()

	assert.Equal(t, tuning.Events.SurgeRadiusBonus, s.scheduler.AggroBonus())
	assert.Equal(t, 1, notifier.count(EventSurgeStart))

	tick(s, 2) // surge duration elapsed
	assert.Equal(t, 0, s.scheduler.AggroBonus())
	assert.Equal(t, 1, notifier.count(EventSurgeEnd))
}

func TestEventLevelGate(t *testing.T) {
	tuning := eventTuning()
	tuning.Events.MinEventLevel = 3
	notifier := &recordingNotifier{}
	s := newEventSession(t, tuning, notifier, nil)
	defer s.Close()

	tick(s, 10)
	assert.Equal(t, 0, notifier.count(EventDarknessStart), "darkness armed below the event level gate")
	assert.False(t, s.timers.Active(timerDarknessCycle))
}
