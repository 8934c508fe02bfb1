package sim

import (
	"testing"

	"github.com/beka-birhanu/mazebound/maze"
	"github.com/stretchr/testify/assert"
)

func TestSpawnQueueDrain(t *testing.T) {
	t.Run("SevenTasksDrainOverFourBatches", func(t *testing.T) {
		var spawned []SpawnTask
		q := NewSpawnQueue(&SpawnQueueConfig{Spawn: func(task SpawnTask) { spawned = append(spawned, task) }})

		tasks := make([]SpawnTask, 7)
		for i := range tasks {
			tasks[i] = SpawnTask{Kind: AgentZombie, Pos: maze.CellPosition{Row: i, Col: 0}}
		}
		q.Enqueue(tasks...)
		assert.Equal(t, 7, q.Len())

		assert.Equal(t, 2, q.DrainOneBatch())
		assert.Equal(t, 2, q.DrainOneBatch())
		assert.Equal(t, 2, q.DrainOneBatch())
		assert.Equal(t, 1, q.DrainOneBatch())
		assert.Equal(t, 0, q.Len())

		// FIFO: tasks materialize in enqueue order.
		assert.Equal(t, tasks, spawned)
	})

	t.Run("EmptyQueueDrainIsNoop", func(t *testing.T) {
		called := false
		q := NewSpawnQueue(&SpawnQueueConfig{Spawn: func(SpawnTask) { called = true }})
		assert.Equal(t, 0, q.DrainOneBatch())
		assert.False(t, called)
	})

	t.Run("ClearDropsQueuedTasks", func(t *testing.T) {
		called := false
		q := NewSpawnQueue(&SpawnQueueConfig{Spawn: func(SpawnTask) { called = true }})
		q.Enqueue(SpawnTask{Kind: AgentDog}, SpawnTask{Kind: AgentBoss})
		q.Clear()
		assert.Equal(t, 0, q.Len())
		assert.Equal(t, 0, q.DrainOneBatch())
		assert.False(t, called, "cleared task still materialized")
	})
}

func TestPickSpawnPositions(t *testing.T) {
	t.Run("KeepsDistanceFromPlayer", func(t *testing.T) {
		m, err := maze.New(20)
		assert.NoError(t, err)
		player := maze.CellPosition{Row: 0, Col: 0}

		// Tier 1 wants the full distance; unlucky packing may degrade to
		// tier 2, which still guarantees half of it.
		positions := PickSpawnPositions(m, player, 5, 8, map[maze.CellPosition]struct{}{}, nil)
		assert.Len(t, positions, 5)
		for _, pos := range positions {
			assert.GreaterOrEqual(t, maze.ManhattanDistance(pos, player), 4)
		}
	})

	t.Run("PositionsAreUnique", func(t *testing.T) {
		m, err := maze.New(12)
		assert.NoError(t, err)
		player := maze.CellPosition{Row: 6, Col: 6}

		positions := PickSpawnPositions(m, player, 10, 4, map[maze.CellPosition]struct{}{}, nil)
		seen := make(map[maze.CellPosition]struct{}, len(positions))
		for _, pos := range positions {
			_, dup := seen[pos]
			assert.False(t, dup, "position %v chosen twice", pos)
			seen[pos] = struct{}{}
			assert.NotEqual(t, player, pos)
		}
	})

	t.Run("RelaxesTiersOnTinyMaze", func(t *testing.T) {
		// A 3x3 maze cannot hold anything 10 cells from the player; the
		// ladder must degrade down to "any free cell, not the player's".
		m, err := maze.New(3)
		assert.NoError(t, err)
		player := maze.CellPosition{Row: 1, Col: 1}

		positions := PickSpawnPositions(m, player, 4, 10, map[maze.CellPosition]struct{}{}, nil)
		assert.Len(t, positions, 4)
		for _, pos := range positions {
			assert.NotEqual(t, player, pos)
		}
	})

	t.Run("ReturnsShortSetWhenCrowded", func(t *testing.T) {
		// 2x2 maze, player on one cell, two of the remaining three cells
		// occupied: only one legal position exists however many are asked.
		m, err := maze.New(2)
		assert.NoError(t, err)
		player := maze.CellPosition{Row: 0, Col: 0}
		occupied := map[maze.CellPosition]struct{}{
			{Row: 0, Col: 1}: {},
			{Row: 1, Col: 0}: {},
		}

		positions := PickSpawnPositions(m, player, 5, 3, occupied, nil)
		assert.LessOrEqual(t, len(positions), 1)
		for _, pos := range positions {
			assert.Equal(t, maze.CellPosition{Row: 1, Col: 1}, pos)
		}
	})
}
