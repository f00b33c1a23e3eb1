// Package rules implements the action-legality gate and the
// end-of-game arbiter (spec.md §4.5, §4.9).
package rules

import "github.com/yaelsagi2/tanks-game3/internal/core"

// Verdict is the outcome of checking one tank's requested action
// against the legality gate. Reason is advisory only — it never
// affects control flow, only logging (spec.md §7: "log output is
// advisory only").
type Verdict struct {
	Legal  bool
	Reason string
}

func legal() Verdict  { return Verdict{Legal: true} }
func illegal(reason string) Verdict { return Verdict{Legal: false, Reason: reason} }

// Check evaluates the ordered rules of spec.md §4.5 for tank id's
// requested action against the current board, applying the
// backward-phase cancellation side effect directly to the tank's
// state when a rule calls for it.
func Check(b *core.Board, id core.EntityID, a core.Action) Verdict {
	e, ok := b.Get(id)
	if !ok || e.Kind != core.KindTank {
		return illegal("unknown or non-tank entity")
	}
	t := e.Tank
	if !t.Alive {
		return illegal("dead tank")
	}

	switch t.BackwardPhase {
	case 1, 2:
		switch a {
		case core.ActionMoveBackward:
			return legal()
		case core.ActionMoveForward, core.ActionGetBattleInfo:
			t.BackwardPhase = 0
			return legal()
		default:
			return illegal("backward phase pending")
		}
	case 3:
		if a == core.ActionMoveBackward {
			dest := b.BackwardDestination(id)
			if _, isWall := b.WallAt(dest); isWall {
				return illegal("backward destination is a wall")
			}
			return legal()
		}
	}

	switch a {
	case core.ActionMoveForward:
		dest := b.ForwardDestination(id)
		if _, isWall := b.WallAt(dest); isWall {
			return illegal("forward destination is a wall")
		}
		return legal()
	case core.ActionMoveBackward:
		// backward_phase == 0 here (1,2,3 handled above): starting the
		// ramp is always legal.
		return legal()
	case core.ActionShoot:
		if !t.CanShoot() {
			return illegal("cannot shoot")
		}
		return legal()
	default:
		// Rotations, GetBattleInfo, DoNothing are always legal.
		return legal()
	}
}
