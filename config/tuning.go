package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentTuning holds the per-kind parameters of a roaming agent.
type AgentTuning struct {
	MoveEveryTicks int `yaml:"move_every_ticks"` // ticks between legal moves
	AggroRadius    int `yaml:"aggro_radius"`     // Manhattan radius at which the agent starts chasing
	Reward         int `yaml:"reward"`           // score awarded when the player kills the agent
}

// EventTuning holds the timing parameters of the darkness cycle and the
// transient random events. Durations are wall-clock seconds; the level
// session converts them to ticks at arm time.
type EventTuning struct {
	DarknessInitialDelaySec float64 `yaml:"darkness_initial_delay_sec"`
	DarknessIntervalSec     float64 `yaml:"darkness_interval_sec"`
	DarknessDurationSec     float64 `yaml:"darkness_duration_sec"`
	HordeCheckDelaySec      float64 `yaml:"horde_check_delay_sec"`
	FogPulseSec             float64 `yaml:"fog_pulse_sec"`
	FogBaseDensity          float64 `yaml:"fog_base_density"`
	FogDarknessMultiplier   float64 `yaml:"fog_darkness_multiplier"`
	FogPulseMin             float64 `yaml:"fog_pulse_min"`
	FogPulseMax             float64 `yaml:"fog_pulse_max"`
	SurgeDurationSec        float64 `yaml:"surge_duration_sec"`
	SurgeRadiusBonus        int     `yaml:"surge_radius_bonus"`
	BonusTimeSec            float64 `yaml:"bonus_time_sec"`
	RandomEventChance       float64 `yaml:"random_event_chance"` // per player move, past MinEventLevel
	MinEventLevel           int     `yaml:"min_event_level"`
	MinHordeLevel           int     `yaml:"min_horde_level"`
	ComboDecaySec           float64 `yaml:"combo_decay_sec"`
}

// LevelTuning parametrizes one level of the game.
type LevelTuning struct {
	MazeSize          int `yaml:"maze_size"`
	ZombieCount       int `yaml:"zombie_count"`
	DogCount          int `yaml:"dog_count"`
	BossCount         int `yaml:"boss_count"`
	WispCount         int `yaml:"wisp_count"`
	HordeSize         int `yaml:"horde_size"`
	MinPlayerDistance int `yaml:"min_player_distance"` // tier-1 spawn distance from the player
	TimeLimitSec      int `yaml:"time_limit_sec"`      // level countdown; zero means untimed
}

// Tuning is the complete difficulty table for the simulation.
type Tuning struct {
	Agents map[string]AgentTuning `yaml:"agents"`
	Events EventTuning            `yaml:"events"`
	Levels []LevelTuning          `yaml:"levels"`
}

// Maze sizes outside this range are clamped by ForLevel.
const (
	MinMazeSize = 10
	MaxMazeSize = 60
)

// DefaultTuning returns the compiled-in difficulty table, used when no
// TUNING_FILE is configured.
func DefaultTuning() *Tuning {
	return &Tuning{
		Agents: map[string]AgentTuning{
			"zombie": {MoveEveryTicks: 20, AggroRadius: 6, Reward: 10},
			"dog":    {MoveEveryTicks: 12, AggroRadius: 9, Reward: 15},
			"boss":   {MoveEveryTicks: 16, AggroRadius: 14, Reward: 50},
			"wisp":   {MoveEveryTicks: 10, AggroRadius: 7, Reward: 25},
		},
		Events: EventTuning{
			DarknessInitialDelaySec: 45,
			DarknessIntervalSec:     90,
			DarknessDurationSec:     20,
			HordeCheckDelaySec:      3,
			FogPulseSec:             0.5,
			FogBaseDensity:          0.02,
			FogDarknessMultiplier:   4,
			FogPulseMin:             0.06,
			FogPulseMax:             0.1,
			SurgeDurationSec:        12,
			SurgeRadiusBonus:        5,
			BonusTimeSec:            15,
			RandomEventChance:       0.05,
			MinEventLevel:           3,
			MinHordeLevel:           4,
			ComboDecaySec:           5,
		},
		Levels: []LevelTuning{
			{MazeSize: 10, ZombieCount: 3, DogCount: 0, BossCount: 0, WispCount: 0, HordeSize: 3, MinPlayerDistance: 6, TimeLimitSec: 120},
			{MazeSize: 12, ZombieCount: 4, DogCount: 1, BossCount: 0, WispCount: 1, HordeSize: 4, MinPlayerDistance: 7, TimeLimitSec: 140},
			{MazeSize: 14, ZombieCount: 5, DogCount: 1, BossCount: 0, WispCount: 1, HordeSize: 5, MinPlayerDistance: 8, TimeLimitSec: 160},
			{MazeSize: 16, ZombieCount: 6, DogCount: 2, BossCount: 1, WispCount: 1, HordeSize: 6, MinPlayerDistance: 9, TimeLimitSec: 180},
			{MazeSize: 18, ZombieCount: 7, DogCount: 2, BossCount: 1, WispCount: 2, HordeSize: 7, MinPlayerDistance: 10, TimeLimitSec: 200},
		},
	}
}

// LoadTuning reads a YAML tuning file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func LoadTuning(path string) (*Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("parsing tuning file: %w", err)
	}
	if len(tuning.Levels) == 0 {
		return nil, fmt.Errorf("tuning file %s defines no levels", path)
	}
	return tuning, nil
}

// ForLevel returns the tuning for a one-based level number. Levels past the
// end of the table extend the last entry, growing the maze by two cells and
// the population by one zombie per level. Maze sizes are clamped to
// [MinMazeSize, MaxMazeSize].
func (t *Tuning) ForLevel(level int) LevelTuning {
	if level < 1 {
		level = 1
	}

	var lt LevelTuning
	if level <= len(t.Levels) {
		lt = t.Levels[level-1]
	} else {
		lt = t.Levels[len(t.Levels)-1]
		over := level - len(t.Levels)
		lt.MazeSize += 2 * over
		lt.ZombieCount += over
		lt.HordeSize += over
	}

	if lt.MazeSize < MinMazeSize {
		lt.MazeSize = MinMazeSize
	}
	if lt.MazeSize > MaxMazeSize {
		lt.MazeSize = MaxMazeSize
	}
	return lt
}
