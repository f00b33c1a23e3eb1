package rules

import "github.com/yaelsagi2/tanks-game3/internal/core"

// Reason is the cause the engine reports for a finished match (spec.md
// §4.9).
type Reason int

const (
	ReasonNone Reason = iota
	ReasonAllTanksDead
	ReasonMaxSteps
	ReasonZeroShells
)

func (r Reason) String() string {
	switch r {
	case ReasonAllTanksDead:
		return "ALL_TANKS_DEAD"
	case ReasonMaxSteps:
		return "MAX_STEPS"
	case ReasonZeroShells:
		return "ZERO_SHELLS"
	default:
		return "NONE"
	}
}

// Result reports the end-of-game arbiter's verdict for one tick.
// Winner is 0 for a tie, 1 or 2 otherwise (spec.md §4.9).
type Result struct {
	Over           bool
	Winner         int
	Reason         Reason
	RemainingTanks [2]int
}

// Arbiter evaluates the four ordered end-of-game conditions at the
// close of every tick, carrying the zero-shell countdown state across
// calls. Open Question (b): once armed, the countdown is never
// disarmed (SPEC_FULL.md §9b).
type Arbiter struct {
	countdownTicks int
	armed          bool
	remaining      int
}

func NewArbiter(countdownTicks int) *Arbiter {
	return &Arbiter{countdownTicks: countdownTicks}
}

// Evaluate runs the ordered conditions of spec.md §4.9 against the
// board's current state at tick (1-indexed tick count already played).
func (a *Arbiter) Evaluate(b *core.Board, tick, maxSteps int) Result {
	p1 := b.LiveTankCount(0)
	p2 := b.LiveTankCount(1)
	remaining := [2]int{p1, p2}

	if p1 == 0 && p2 == 0 {
		return Result{Over: true, Winner: 0, Reason: ReasonAllTanksDead, RemainingTanks: remaining}
	}
	if p1 == 0 {
		return Result{Over: true, Winner: 2, Reason: ReasonAllTanksDead, RemainingTanks: remaining}
	}
	if p2 == 0 {
		return Result{Over: true, Winner: 1, Reason: ReasonAllTanksDead, RemainingTanks: remaining}
	}

	if a.allAmmoZero(b) {
		if !a.armed {
			a.armed = true
			a.remaining = a.countdownTicks
		}
	}
	if a.armed {
		a.remaining--
		if a.remaining <= 0 {
			return Result{Over: true, Winner: 0, Reason: ReasonZeroShells, RemainingTanks: remaining}
		}
	}

	if tick >= maxSteps {
		return Result{Over: true, Winner: 0, Reason: ReasonMaxSteps, RemainingTanks: remaining}
	}

	return Result{Over: false, RemainingTanks: remaining}
}

func (a *Arbiter) allAmmoZero(b *core.Board) bool {
	for pid := 0; pid < b.NumPlayers(); pid++ {
		for _, id := range b.TankIDs(pid) {
			e, ok := b.Get(id)
			if !ok || !e.Tank.Alive {
				continue
			}
			if e.Tank.Ammo > 0 {
				return false
			}
		}
	}
	return true
}
