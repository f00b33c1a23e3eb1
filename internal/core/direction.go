package core

// Direction is one of the 8 compass headings, or None. The underlying
// values double as indices into the offset/rotation tables, so rotation
// is plain modular index arithmetic.
type Direction int

const (
	U Direction = iota
	UR
	R
	DR
	D
	DL
	L
	UL
	None
)

var directionOffsets = [8]Point{
	U:  {X: -1, Y: 0},
	UR: {X: -1, Y: 1},
	R:  {X: 0, Y: 1},
	DR: {X: 1, Y: 1},
	D:  {X: 1, Y: 0},
	DL: {X: 1, Y: -1},
	L:  {X: 0, Y: -1},
	UL: {X: -1, Y: -1},
}

var directionNames = [9]string{"U", "UR", "R", "DR", "D", "DL", "L", "UL", "None"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "Invalid"
	}
	return directionNames[d]
}

// Offset returns the unit (dx, dy) vector for a compass direction. Offset
// of None is the zero vector.
func (d Direction) Offset() Point {
	if d == None {
		return Point{}
	}
	return directionOffsets[d]
}

// RotateLeft rotates the heading counter-clockwise by k steps of 45°
// (k in {1,2}); left decrements the compass index mod 8.
func (d Direction) RotateLeft(k int) Direction {
	return Direction(mod(int(d)-k, 8))
}

// RotateRight rotates the heading clockwise by k steps of 45°
// (k in {1,2}); right increments the compass index mod 8.
func (d Direction) RotateRight(k int) Direction {
	return Direction(mod(int(d)+k, 8))
}

// IndexDelta returns the signed shortest step count (in [-4,4]) from d to
// target around the 8-point compass, used by the reference algorithm to
// pick the cheapest rotation.
func (d Direction) IndexDelta(target Direction) int {
	delta := mod(int(target)-int(d), 8)
	if delta > 4 {
		delta -= 8
	}
	return delta
}
