package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
	ErrAmbiguousName  = errors.New("name matches more than one player")

	// Match validation errors
	ErrRosterTooSmall   = errors.New("match needs at least two entrants")
	ErrDuplicateEntrant = errors.New("player appears more than once in match")
	ErrInvalidRank      = errors.New("rank must be a positive integer")
	ErrEmptyName        = errors.New("entrant name must not be empty")

	// Rating errors
	ErrNoConvergence = errors.New("volatility iteration did not converge")
)
