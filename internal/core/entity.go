package core

// Kind tags which payload an Entity carries. Go has no sum types, so the
// board arena uses this tag plus typed pointer fields as its tagged
// variant (Design Notes §9) instead of dynamic_cast-style downcasting.
type Kind int

const (
	KindNone Kind = iota
	KindTank
	KindShell
	KindWall
	KindMine
)

func (k Kind) String() string {
	switch k {
	case KindTank:
		return "Tank"
	case KindShell:
		return "Shell"
	case KindWall:
		return "Wall"
	case KindMine:
		return "Mine"
	default:
		return "None"
	}
}

// EntityID is a stable handle into a Board's arena. It is never a
// pointer, so a removed entity cannot leave a dangling reference —
// looking it up after removal simply reports "not found" (or, for
// tanks, a still-present-but-dead record).
type EntityID int

// TankState is a tank's mutable state (spec.md §3). PlayerID is
// 0-indexed internally (0, 1), matching Go slice-index conventions;
// spec.md's player id ∈ {1,2} is PlayerID+1 at every external boundary
// (battle-info characters, CLI output, result reports).
type TankState struct {
	PlayerID      int
	TankID        int // contiguous per player, 0..k-1, stable for the match
	Dir           Direction
	Ammo          int
	Cooldown      int // invariant: 0 <= Cooldown <= 5
	BackwardPhase int // invariant: BackwardPhase in {0,1,2,3}
	Alive         bool
}

func (t *TankState) CanShoot() bool { return t.Alive && t.Ammo > 0 && t.Cooldown == 0 }

// ShellState is an in-flight shell's state (spec.md §3/§4.4).
type ShellState struct {
	Dir           Direction // never None once in flight
	OwnerPlayerID int
	OwnerTankID   int
	FreshlySpawned bool // skips movement on the tick it was created
}

// WallState tracks a wall's hit counter (0 or 1; a second hit destroys it).
type WallState struct {
	Hits int
}

// MineState has no mutable fields; a mine is destroyed outright on contact.
type MineState struct{}

// Entity is one occupant of the board: a tagged variant over Tank, Shell,
// Wall, Mine. Exactly one payload pointer is non-nil, matching Kind.
type Entity struct {
	ID   EntityID
	Kind Kind
	Pos  Point

	Tank  *TankState
	Shell *ShellState
	Wall  *WallState
	Mine  *MineState
}
