package maze

import (
	"errors"
	"math"
	"math/rand"
)

// RewardModel defines the reward configuration for a maze.
// RewardOne and RewardTwo represent two possible reward values
// that can be assigned to maze cells.
// RewardTypeProb determines the base probability of assigning RewardOne
// over RewardTwo, adjusted dynamically based on cell location.
type RewardModel struct {
	RewardOne      int     // Value of the first reward type
	RewardTwo      int     // Value of the second reward type
	RewardTypeProb float64 // Base probability of RewardOne (0.0 to 1.0)
}

var ErrInvalidRewardModel = errors.New("invalid reward model")

// PopulateRewards assigns a reward to every maze cell based on the
// RewardModel, with the probability split adjusted by each cell's distance
// from the maze center.
func (m *Maze) PopulateRewards(r RewardModel) error {
	if r.RewardTypeProb > 1 || r.RewardTypeProb < 0 || min(r.RewardOne, r.RewardTwo) < 0 {
		return ErrInvalidRewardModel
	}

	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			reward := r.RewardOne
			if rand.Float64() > calcProb(r.RewardTypeProb, CellPosition{Row: row, Col: col}, m.Size) {
				reward = r.RewardTwo
			}
			m.Grid[row][col].Reward = reward
		}
	}
	return nil
}

// TakeReward collects and clears the reward of the cell at pos, returning
// its value. Out-of-bound positions yield zero.
func (m *Maze) TakeReward(pos CellPosition) int {
	if !m.InBound(pos.Row, pos.Col) {
		return 0
	}
	reward := m.Grid[pos.Row][pos.Col].Reward
	m.Grid[pos.Row][pos.Col].Reward = 0
	return reward
}

// TotalReward returns the sum of all uncollected rewards in the maze.
func (m *Maze) TotalReward() int {
	total := 0
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			total += m.Grid[row][col].Reward
		}
	}
	return total
}

// calcProb calculates the adjusted probability of assigning RewardOne based
// on the cell's distance from the center of the maze.
func calcProb(baseProb float64, cell CellPosition, size int) float64 {
	mid := size / 2

	// Manhattan distance to the maze center, normalized and inverted for
	// proximity scoring.
	distToMid := math.Abs(float64(cell.Row-mid)) + math.Abs(float64(cell.Col-mid))
	maxDist := float64(2 * mid)
	if maxDist == 0 {
		return baseProb
	}
	normalizedDist := 1.0 - distToMid/maxDist

	return baseProb + (1-baseProb)*normalizedDist/10
}
