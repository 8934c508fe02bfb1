package sim

import (
	"github.com/beka-birhanu/mazebound/config"
)

// AgentKind names a roaming entity category.
type AgentKind string

const (
	AgentZombie AgentKind = "zombie"
	AgentDog    AgentKind = "dog"
	AgentBoss   AgentKind = "boss"
	AgentWisp   AgentKind = "wisp"
)

// BehaviorState is the current decision mode of an agent.
type BehaviorState int

const (
	Patrol BehaviorState = iota
	Chasing
	Fleeing
)

// String returns the behavior state name.
func (s BehaviorState) String() string {
	switch s {
	case Chasing:
		return "Chasing"
	case Fleeing:
		return "Fleeing"
	default:
		return "Patrol"
	}
}

// AgentProfile holds the static parameters of one agent kind: how often it
// moves, how far it notices the player, what it is worth, and whether it
// hunts or avoids the player once alerted.
type AgentProfile struct {
	Kind           AgentKind
	MoveEveryTicks int
	AggroRadius    int
	Reward         int
	Alerted        BehaviorState // behavior once the player is inside the aggro radius
}

// ProfileFor builds the profile of an agent kind from the tuning table.
// Unknown kinds fall back to zombie parameters.
func ProfileFor(kind AgentKind, tuning *config.Tuning) AgentProfile {
	at, ok := tuning.Agents[string(kind)]
	if !ok {
		at = tuning.Agents[string(AgentZombie)]
	}

	alerted := Chasing
	if kind == AgentWisp {
		alerted = Fleeing
	}

	return AgentProfile{
		Kind:           kind,
		MoveEveryTicks: at.MoveEveryTicks,
		AggroRadius:    at.AggroRadius,
		Reward:         at.Reward,
		Alerted:        alerted,
	}
}
