package sim

import (
	"log"

	"github.com/beka-birhanu/mazebound/config"
	"github.com/beka-birhanu/mazebound/maze"
	"github.com/google/uuid"
)

// Collection names owned by the EntityManager.
const (
	CollectionZombies = "zombies"
	CollectionDogs    = "dogs"
	CollectionBosses  = "bosses"
	CollectionWisps   = "wisps"
	CollectionHorde   = "horde"
)

// collectionOrder fixes the iteration order of the named collections so
// bulk updates are deterministic.
var collectionOrder = []string{
	CollectionZombies,
	CollectionDogs,
	CollectionBosses,
	CollectionWisps,
	CollectionHorde,
}

// kindCollections maps an agent kind to the collection its level-start
// population lives in. Event-spawned agents go to the horde collection
// regardless of kind.
var kindCollections = map[AgentKind]string{
	AgentZombie: CollectionZombies,
	AgentDog:    CollectionDogs,
	AgentBoss:   CollectionBosses,
	AgentWisp:   CollectionWisps,
}

// EntityManager owns every live agent collection of one level. It creates
// the initial population, receives event-spawned agents from the spawn
// queue, drives the per-tick bulk update, and retires agents explicitly.
// Nothing is ever removed implicitly.
type EntityManager struct {
	m           *maze.Maze
	tuning      *config.Tuning
	collections map[string][]*Agent
	logger      *log.Logger
}

// EntityManagerConfig holds configuration for creating an EntityManager.
type EntityManagerConfig struct {
	Maze   *maze.Maze
	Tuning *config.Tuning
	Logger *log.Logger
}

// NewEntityManager creates an EntityManager with empty collections.
func NewEntityManager(c *EntityManagerConfig) *EntityManager {
	collections := make(map[string][]*Agent, len(collectionOrder))
	for _, name := range collectionOrder {
		collections[name] = nil
	}
	return &EntityManager{
		m:           c.Maze,
		tuning:      c.Tuning,
		collections: collections,
		logger:      c.Logger,
	}
}

// PopulateLevel constructs the level's initial population. Placement keeps
// a minimum Manhattan distance from the player's start cell and uniqueness
// against other occupied cells, degrading through the spawn tiers when the
// maze cannot satisfy the ideal constraints.
func (em *EntityManager) PopulateLevel(lt config.LevelTuning, player maze.CellPosition) {
	wanted := []struct {
		kind  AgentKind
		count int
	}{
		{AgentZombie, lt.ZombieCount},
		{AgentDog, lt.DogCount},
		{AgentBoss, lt.BossCount},
		{AgentWisp, lt.WispCount},
	}

	occupied := em.occupiedCells()
	for _, w := range wanted {
		if w.count <= 0 {
			continue
		}
		positions := PickSpawnPositions(em.m, player, w.count, lt.MinPlayerDistance, occupied, em.logger)
		for _, pos := range positions {
			agent := NewAgent(&AgentConfig{
				Maze:    em.m,
				Profile: ProfileFor(w.kind, em.tuning),
				Pos:     pos,
			})
			em.Add(kindCollections[w.kind], agent)
			occupied[pos] = struct{}{}
		}
	}
}

// Add appends an agent to a named collection.
func (em *EntityManager) Add(collection string, a *Agent) {
	em.collections[collection] = append(em.collections[collection], a)
}

// SpawnFromTask materializes one spawn task into the horde collection.
// The spawn queue uses this as its drain target.
func (em *EntityManager) SpawnFromTask(task SpawnTask) {
	agent := NewAgent(&AgentConfig{
		Maze:    em.m,
		Profile: ProfileFor(task.Kind, em.tuning),
		Pos:     task.Pos,
		Tag:     task.Tag,
	})
	em.Add(CollectionHorde, agent)
}

// UpdateAll runs one simulation tick over every collection, forwarding the
// player position as the behavior target. The whole update is
// short-circuited when time freeze is active. Empty collections need no
// special casing.
func (em *EntityManager) UpdateAll(player maze.CellPosition, aggroBonus int, frozen bool) {
	if frozen {
		return
	}
	for _, name := range collectionOrder {
		for _, a := range em.collections[name] {
			a.Update(player, aggroBonus)
		}
	}
}

// InterpolateAll advances the render interpolation of every agent.
func (em *EntityManager) InterpolateAll(dt float64) {
	for _, name := range collectionOrder {
		for _, a := range em.collections[name] {
			a.Interpolate(dt)
		}
	}
}

// CollidingAgent returns the first live agent colliding with the given
// position, or nil.
func (em *EntityManager) CollidingAgent(pos maze.CellPosition) *Agent {
	for _, name := range collectionOrder {
		for _, a := range em.collections[name] {
			if !a.Disposed() && a.CollidesWith(pos) {
				return a
			}
		}
	}
	return nil
}

// Retire disposes the agent and removes it from its owning collection.
// Retiring an unknown or already-retired agent is a no-op.
func (em *EntityManager) Retire(id uuid.UUID) *Agent {
	for _, name := range collectionOrder {
		agents := em.collections[name]
		for idx, a := range agents {
			if a.ID != id {
				continue
			}
			a.Dispose()
			em.collections[name] = append(agents[:idx], agents[idx+1:]...)
			return a
		}
	}
	return nil
}

// ClearSafeZone relocates every agent within radius of center to a fresh
// spawn position outside it, snapping positions synchronously. Used as
// anti-camping pushback around the player's spawn cell.
func (em *EntityManager) ClearSafeZone(center maze.CellPosition, radius int) {
	var crowding []*Agent
	for _, name := range collectionOrder {
		for _, a := range em.collections[name] {
			if maze.ManhattanDistance(a.Pos(), center) <= radius {
				crowding = append(crowding, a)
			}
		}
	}
	if len(crowding) == 0 {
		return
	}

	positions := PickSpawnPositions(em.m, center, len(crowding), radius+1, em.occupiedCells(), em.logger)
	for i, pos := range positions {
		crowding[i].Relocate(pos)
	}
}

// All returns a snapshot slice of every live agent across collections.
func (em *EntityManager) All() []*Agent {
	var all []*Agent
	for _, name := range collectionOrder {
		all = append(all, em.collections[name]...)
	}
	return all
}

// Count returns the total number of live agents.
func (em *EntityManager) Count() int {
	count := 0
	for _, name := range collectionOrder {
		count += len(em.collections[name])
	}
	return count
}

// CollectionCount returns the number of agents in one named collection.
func (em *EntityManager) CollectionCount(name string) int {
	return len(em.collections[name])
}

// DisposeAll retires every agent and empties every collection. Used on
// level teardown; safe to call more than once.
func (em *EntityManager) DisposeAll() {
	for _, name := range collectionOrder {
		for _, a := range em.collections[name] {
			a.Dispose()
		}
		em.collections[name] = nil
	}
}

// occupiedCells returns the set of cells currently holding an agent.
func (em *EntityManager) occupiedCells() map[maze.CellPosition]struct{} {
	occupied := make(map[maze.CellPosition]struct{}, em.Count())
	for _, name := range collectionOrder {
		for _, a := range em.collections[name] {
			occupied[a.Pos()] = struct{}{}
		}
	}
	return occupied
}
