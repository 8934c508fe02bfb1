package sim

import (
	"fmt"
	"math/rand"
)

// Timer names owned by the event scheduler. Using the timer service's named
// re-arm semantics guarantees the same event can never be armed twice by
// parallel mechanisms.
const (
	timerDarknessCycle = "darkness:cycle"
	timerHordeCheck    = "darkness:horde-check"
	timerDarknessEnd   = "darkness:end"
	timerFogPulse      = "darkness:fog-pulse"
	timerSurgeEnd      = "surge:end"
)

// Event names reported to the notifier collaborator.
const (
	EventDarknessStart = "darkness_start"
	EventDarknessEnd   = "darkness_end"
	EventHordeSpawned  = "horde_spawned"
	EventSurgeStart    = "surge_start"
	EventSurgeEnd      = "surge_end"
	EventBonusTime     = "bonus_time"
)

// EventScheduler owns the level's difficulty events: the periodic darkness
// cycle with its nested horde check, end restore and fog pulse, plus the
// transient events rolled per player move (surge, bonus time). Darkness is
// deliberately excluded from the random pool; the periodic cycle is its
// only owner.
//
// All timing goes through the session's TimerService, so every callback
// fires on the simulation tick and teardown cancels everything at once.
type EventScheduler struct {
	s *LevelSession

	darknessActive bool
	darknessStart  uint64 // tick the running cycle started at
	hordeSpawned   bool   // horde already spawned this darkness cycle
	fogDensity     float64
	pulseHigh      bool
	aggroBonus     int // chase-range bonus while a surge is active
}

func newEventScheduler(s *LevelSession) *EventScheduler {
	return &EventScheduler{
		s:          s,
		fogDensity: s.tuning.Events.FogBaseDensity,
	}
}

// Start arms the periodic darkness cycle: a first trigger after the initial
// delay, then recurring at the longer interval. Darkness is level-gated and
// never armed below the event threshold.
func (es *EventScheduler) Start() {
	if es.s.Level < es.s.tuning.Events.MinEventLevel {
		return
	}
	es.s.timers.After(timerDarknessCycle, es.s.ticks(es.s.tuning.Events.DarknessInitialDelaySec), es.fireDarknessCycle)
}

// fireDarknessCycle is the recurring cycle trigger. The recurrence is
// re-armed before anything else so a suppressed activation does not end the
// cycle, and the pause/running/won guards are re-checked here, at fire
// time, since they may have changed while the timer was pending.
func (es *EventScheduler) fireDarknessCycle() {
	es.s.timers.After(timerDarknessCycle, es.s.ticks(es.s.tuning.Events.DarknessIntervalSec), es.fireDarknessCycle)

	if !es.s.guardsPass() {
		return
	}
	if es.darknessActive {
		return
	}
	es.startDarkness()
}

// startDarkness flips the active flag, thickens the fog, and arms the
// nested timers: the short-delay horde check, the fixed-duration end
// restore, and the continuous fog pulse.
func (es *EventScheduler) startDarkness() {
	events := es.s.tuning.Events

	es.darknessActive = true
	es.darknessStart = es.s.timers.Now()
	es.hordeSpawned = false

	es.setFog(events.FogBaseDensity * events.FogDarknessMultiplier)
	if es.s.effects != nil {
		es.s.effects.SetDarkness(true)
	}
	es.s.notify(EventDarknessStart, "Darkness falls over the maze...")

	es.s.timers.After(timerHordeCheck, es.s.ticks(events.HordeCheckDelaySec), es.hordeCheck)
	es.s.timers.After(timerDarknessEnd, es.s.ticks(events.DarknessDurationSec), es.endDarkness)
	es.s.timers.Every(timerFogPulse, es.s.ticks(events.FogPulseSec), es.fogPulse)
}

// endDarkness restores the ambient state. It runs from the end timer and is
// also safe to invoke redundantly (e.g. on teardown); ending twice is a
// no-op.
func (es *EventScheduler) endDarkness() {
	if !es.darknessActive {
		return
	}
	es.darknessActive = false

	// The pulse interval also self-cancels on its next tick when it sees
	// the flag cleared; cancelling here as well is harmless either way.
	es.s.timers.Cancel(timerFogPulse)

	es.setFog(es.s.tuning.Events.FogBaseDensity)
	if es.s.effects != nil {
		es.s.effects.SetDarkness(false)
	}
	es.s.notify(EventDarknessEnd, "The darkness lifts.")
}

// hordeCheck fires a few seconds into darkness and triggers the horde spawn
// if darkness is still active and no horde has spawned this cycle.
func (es *EventScheduler) hordeCheck() {
	if !es.darknessActive || es.hordeSpawned {
		return
	}
	if es.s.Level < es.s.tuning.Events.MinHordeLevel {
		return
	}
	es.hordeSpawned = true
	es.spawnHorde()
}

// spawnHorde queues a burst of horde agents for the spawn queue to
// materialize a batch at a time. Composition scales with the tuned horde
// size: one boss past five entities, a dog per three, zombies for the rest.
func (es *EventScheduler) spawnHorde() {
	size := es.s.lt.HordeSize
	if size <= 0 {
		return
	}

	dogs := size / 3
	bosses := 0
	if size >= 5 {
		bosses = 1
	}

	positions := PickSpawnPositions(es.s.m, es.s.player, size, es.s.lt.MinPlayerDistance, es.s.entities.occupiedCells(), es.s.logger)

	tasks := make([]SpawnTask, 0, len(positions))
	for i, pos := range positions {
		kind := AgentZombie // the remainder of the horde
		switch {
		case i < bosses:
			kind = AgentBoss
		case i < bosses+dogs:
			kind = AgentDog
		}
		tasks = append(tasks, SpawnTask{Kind: kind, Pos: pos, Tag: "darkness_horde"})
	}

	es.s.queue.Enqueue(tasks...)
	es.s.notify(EventHordeSpawned, fmt.Sprintf("A horde of %d rises from the dark!", len(tasks)))
}

// fogPulse breathes the fog density between two bounds while darkness is
// active. The interval polls the active flag each tick and cancels itself
// the moment the flag clears; it may also have been cancelled explicitly by
// endDarkness, and both paths are safe to run redundantly.
func (es *EventScheduler) fogPulse() {
	if !es.darknessActive {
		es.s.timers.Cancel(timerFogPulse)
		return
	}

	events := es.s.tuning.Events
	es.pulseHigh = !es.pulseHigh
	if es.pulseHigh {
		es.setFog(events.FogPulseMax)
	} else {
		es.setFog(events.FogPulseMin)
	}
}

// OnPlayerMove rolls the transient random events: past the level gate, each
// player move has a small chance to start one event chosen uniformly from
// the candidate set. Darkness is not in the set; its periodic scheduler is
// the only mechanism that arms it.
func (es *EventScheduler) OnPlayerMove() {
	events := es.s.tuning.Events
	if es.s.Level < events.MinEventLevel {
		return
	}
	if rand.Float64() >= events.RandomEventChance {
		return
	}

	switch rand.Intn(2) {
	case 0:
		es.startSurge()
	default:
		es.s.addBonusTime(events.BonusTimeSec)
		es.s.notify(EventBonusTime, fmt.Sprintf("Bonus time! +%.0fs", events.BonusTimeSec))
	}
}

// startSurge temporarily widens every agent's chase range. Re-rolling a
// surge while one is active just extends it: the end timer is re-armed
// under its fixed name.
func (es *EventScheduler) startSurge() {
	events := es.s.tuning.Events
	es.aggroBonus = events.SurgeRadiusBonus
	es.s.timers.After(timerSurgeEnd, es.s.ticks(events.SurgeDurationSec), es.endSurge)
	es.s.notify(EventSurgeStart, "The horde surges with rage!")
}

func (es *EventScheduler) endSurge() {
	if es.aggroBonus == 0 {
		return
	}
	es.aggroBonus = 0
	es.s.notify(EventSurgeEnd, "The surge subsides.")
}

// setFog stores the ambient density and forwards it to the optional screen
// effects collaborator.
func (es *EventScheduler) setFog(density float64) {
	es.fogDensity = density
	if es.s.effects != nil {
		es.s.effects.SetFogDensity(density)
	}
}

// AggroBonus returns the current chase-range bonus (non-zero during a surge).
func (es *EventScheduler) AggroBonus() int {
	return es.aggroBonus
}

// FogDensity returns the current ambient fog density.
func (es *EventScheduler) FogDensity() float64 {
	return es.fogDensity
}

// DarknessActive reports whether a darkness cycle is running.
func (es *EventScheduler) DarknessActive() bool {
	return es.darknessActive
}

// DarknessTicks returns how many ticks the running darkness cycle has been
// active, zero when none is. UIs use it to pace their transition effects.
func (es *EventScheduler) DarknessTicks() uint64 {
	if !es.darknessActive {
		return 0
	}
	return es.s.timers.Now() - es.darknessStart
}

// stop ends any running darkness and clears surge state. Teardown path; the
// session cancels the timers themselves.
func (es *EventScheduler) stop() {
	es.endDarkness()
	es.aggroBonus = 0
}
