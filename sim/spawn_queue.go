package sim

import (
	"log"
	"math/rand"

	"github.com/beka-birhanu/mazebound/config"
	"github.com/beka-birhanu/mazebound/maze"
)

// SpawnBatchSize is the maximum number of spawn tasks materialized per
// simulation tick. Converting a burst of "spawn N now" into a few
// constructions per frame keeps a horde from causing an allocation spike.
const SpawnBatchSize = 2

// Attempt budget for tier-1 spawn placement, per requested point.
const placementAttempts = 30

// SpawnTask is one deferred entity construction.
type SpawnTask struct {
	Kind AgentKind
	Pos  maze.CellPosition
	Tag  string // cosmetic tag carried through to the agent
}

// SpawnQueue converts bursts of spawn tasks into a bounded number of entity
// constructions per tick. Tasks drain in FIFO order, at most SpawnBatchSize
// per DrainOneBatch call; the host loop invokes DrainOneBatch exactly once
// per tick, before collision checks run, so a freshly spawned entity is
// eligible for collision in the same tick it appears.
type SpawnQueue struct {
	tasks  []SpawnTask
	spawn  func(SpawnTask)
	logger *log.Logger
}

// SpawnQueueConfig holds configuration for creating a SpawnQueue.
type SpawnQueueConfig struct {
	Spawn  func(SpawnTask) // invoked once per drained task
	Logger *log.Logger
}

// NewSpawnQueue creates an empty spawn queue.
func NewSpawnQueue(c *SpawnQueueConfig) *SpawnQueue {
	return &SpawnQueue{spawn: c.Spawn, logger: c.Logger}
}

// Enqueue appends tasks in order to the back of the queue.
func (q *SpawnQueue) Enqueue(tasks ...SpawnTask) {
	q.tasks = append(q.tasks, tasks...)
}

// Len returns the number of queued tasks.
func (q *SpawnQueue) Len() int {
	return len(q.tasks)
}

// DrainOneBatch removes at most SpawnBatchSize tasks from the front of the
// queue and materializes them. Calling it on an empty queue is a no-op. It
// returns the number of tasks drained.
func (q *SpawnQueue) DrainOneBatch() int {
	count := min(SpawnBatchSize, len(q.tasks))
	for i := 0; i < count; i++ {
		q.spawn(q.tasks[i])
	}
	q.tasks = q.tasks[count:]
	return count
}

// Clear drops every queued task without materializing it. Used on level
// teardown.
func (q *SpawnQueue) Clear() {
	q.tasks = nil
}

// PickSpawnPositions selects up to count spawn cells using a three-tier
// constraint relaxation ladder:
//
//  1. at least minDist Manhattan distance from the player, from every
//     occupied cell and from the points already chosen, within a bounded
//     attempt budget;
//  2. the same with roughly half the distance;
//  3. any free cell that is not the player's.
//
// When even the final tier yields fewer points than requested, the shortage
// is logged and the subset found so far (possibly empty) is returned. The
// maze may simply be too small or too crowded for the ideal placement;
// spawning fewer entities than intended is the worst acceptable outcome.
func PickSpawnPositions(m *maze.Maze, player maze.CellPosition, count, minDist int, occupied map[maze.CellPosition]struct{}, logger *log.Logger) []maze.CellPosition {
	chosen := make([]maze.CellPosition, 0, count)
	taken := make(map[maze.CellPosition]struct{}, len(occupied)+count)
	for pos := range occupied {
		taken[pos] = struct{}{}
	}

	for _, dist := range []int{minDist, minDist / 2, 0} {
		pickTier(m, player, count, dist, taken, &chosen)
		if len(chosen) == count {
			return chosen
		}
	}

	if logger != nil {
		logger.Printf("%s[WARN]%s spawn placement degraded: found %d of %d requested positions",
			config.LogWarnColor, config.LogColorReset, len(chosen), count)
	}
	return chosen
}

// pickTier appends random positions satisfying one constraint tier until the
// target count or the attempt budget is exhausted. A zero dist means "not on
// top of the player".
func pickTier(m *maze.Maze, player maze.CellPosition, count, dist int, taken map[maze.CellPosition]struct{}, chosen *[]maze.CellPosition) {
	attempts := placementAttempts * count
	for attempts > 0 && len(*chosen) < count {
		attempts--
		pos := maze.CellPosition{Row: rand.Intn(m.Size), Col: rand.Intn(m.Size)}

		if pos == player {
			continue
		}
		if _, used := taken[pos]; used {
			continue
		}
		if dist > 0 && maze.ManhattanDistance(pos, player) < dist {
			continue
		}
		if dist > 0 && tooCloseToChosen(pos, *chosen, dist) {
			continue
		}

		taken[pos] = struct{}{}
		*chosen = append(*chosen, pos)
	}
}

func tooCloseToChosen(pos maze.CellPosition, chosen []maze.CellPosition, dist int) bool {
	for _, other := range chosen {
		if maze.ManhattanDistance(pos, other) < dist {
			return true
		}
	}
	return false
}
