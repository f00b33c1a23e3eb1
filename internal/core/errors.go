package core

import (
	"errors"
	"fmt"
)

// Sentinel errors, grouped by the taxonomy in spec.md §7.
var (
	// InputError — malformed map input. mapfile.Parse returns
	// ErrInputMalformed as a fatal error for a missing, misordered or
	// unparsable header line, and ErrNonPositiveHeader for a non-positive
	// header value. Grid-body defects are never errors; they are
	// collected as warnings.
	ErrInputMalformed     = errors.New("malformed map input")
	ErrNonPositiveHeader  = errors.New("header value must be positive")

	// ConfigError — bad CLI/config input.
	ErrInvalidConfig = errors.New("invalid configuration")

	// RuntimeInvariantViolation — a broken engine invariant.
	ErrInvariantViolation = errors.New("runtime invariant violation")
	ErrGameOver           = errors.New("game is already over")
	ErrUnknownEntity      = errors.New("unknown entity id")
	ErrCellOccupied       = errors.New("cell already occupied at tick boundary")
)

// InvariantError carries enough context to diagnose which tick and which
// entity broke an invariant, without leaking internal panics past a match
// boundary (spec.md §7: "do not corrupt tournament results").
type InvariantError struct {
	Tick   int
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("tick %d: %s: %v", e.Tick, e.Detail, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func WrapInvariant(tick int, detail string, err error) error {
	return &InvariantError{Tick: tick, Detail: detail, Err: err}
}

// ActionError wraps a rejected or failed action with the entity and tick
// it was attempted on, grounded on the teacher's core.WrapActionError.
type ActionError struct {
	Tick     int
	PlayerID int
	TankID   int
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("tick %d: player %d tank %d: %v", e.Tick, e.PlayerID, e.TankID, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func WrapAction(tick, playerID, tankID int, err error) error {
	return &ActionError{Tick: tick, PlayerID: playerID, TankID: tankID, Err: err}
}
