// Package states implements the match lifecycle state machine
// (SPEC_FULL.md §10): Initializing → Starting → Running → (Paused) →
// Ending → Ended. The engine.Engine tick loop does not consult phases
// mid-tick (spec.md §5: ticks are indivisible) — the state machine
// exists purely for observability around a match, advanced once per
// phase boundary by the tournament driver (cmd/tankgame does not use it).
package states

import "fmt"

// GamePhase represents one phase of a match's lifecycle.
type GamePhase int

const (
	PhaseInitializing GamePhase = iota
	PhaseStarting
	PhaseRunning
	PhasePaused
	PhaseEnding
	PhaseEnded
	PhaseError
)

func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseStarting:
		return "Starting"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseEnding:
		return "Ending"
	case PhaseEnded:
		return "Ended"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// AllowedTransitions returns the phases reachable directly from p.
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseStarting, PhaseError}
	case PhaseStarting:
		return []GamePhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []GamePhase{PhasePaused, PhaseEnding, PhaseError}
	case PhasePaused:
		return []GamePhase{PhaseRunning, PhaseEnding, PhaseError}
	case PhaseEnding:
		return []GamePhase{PhaseEnded, PhaseError}
	default:
		return nil
	}
}

func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
