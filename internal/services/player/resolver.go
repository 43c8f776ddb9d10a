package player

import (
	"fmt"

	"leaguerank/internal/model"
)

// Resolver decides which of several same-named players a bare roster entry
// refers to. Interactive frontends can prompt; the built-in policies below
// cover non-interactive runs.
type Resolver func(candidates []*model.Player) (*model.Player, error)

/// FailResolver refuses to guess: ambiguous names error out and the operator
// must re-run with an explicit cohort.
func FailResolver(candidates []*model.Player) (*model.Player, error) {
	return nil, model.ErrAmbiguousName
}

// NewestResolver picks the candidate most recently seen in an event.
func NewestResolver(candidates []*model.Player) (*model.Player, error) {
	return pickByActivity(candidates, func(a, b int) bool { return a > b })
}

// OldestResolver picks the candidate least recently seen in an event.
func OldestResolver(candidates []*model.Player) (*model.Player, error) {
	return pickByActivity(candidates, func(a, b int) bool { return a < b })
}

// ResolverForPolicy maps a policy name to its resolver.
func ResolverForPolicy(policy string) (Resolver, error) {
	switch policy {
	case "", "fail":
		return FailResolver, nil
	case "newest":
		return NewestResolver, nil
	case "oldest":
		return OldestResolver, nil
	default:
		return nil, fmt.Errorf("unknown resolve policy %q (want fail, newest or oldest)", policy)
	}
}

func pickByActivity(candidates []*model.Player, better func(a, b int) bool) (*model.Player, error) {
	if len(candidates) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	chosen := candidates[0]
	for _, c := range candidates[1:] {
		if better(c.LastActiveDay, chosen.LastActiveDay) {
			chosen = c
		}
	}
	return chosen, nil
}
