// Package gameapi provides structures and utilities for driving live level
// sessions over HTTP.
package gameapi

import (
	"github.com/beka-birhanu/mazebound/maze"
)

// CreateSessionRequest represents a request to start a new level session.
type CreateSessionRequest struct {
	Level int `json:"level" binding:"required,min=1"`
}

// CreateSessionResponse carries the ID of a freshly started session.
type CreateSessionResponse struct {
	ID string `json:"id"`
}

// MoveRequest represents one player step.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required,oneof=North South East West"`
}

// AttackResponse reports the outcome of a player attack.
type AttackResponse struct {
	Hit    bool `json:"hit"`
	Reward int  `json:"reward"`
}

// MazeResponse carries the wall grid of a session's level.
type MazeResponse struct {
	Size int           `json:"size"`
	Grid [][]maze.Cell `json:"grid"`
}
