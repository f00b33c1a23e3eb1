package core

import "sort"

// Board owns every entity for the lifetime of a match: an arena indexed
// by EntityID, plus a position index for O(1) cell lookup (Design Notes
// §9). Removal is exclusive and terminal — a recycled EntityID is never
// handed back out to a live tank, only to freshly spawned shells, so a
// stale tank/wall/mine handle simply reports "not found" rather than
// aliasing something new.
type Board struct {
	Rows, Cols int

	entities []Entity
	freeList []EntityID

	cellIndex map[Point][]EntityID

	tankIDs [][]EntityID // tankIDs[playerID][tankID] -> EntityID, fixed at setup
	shellOrder []EntityID // insertion order of currently-live shells
}

func NewBoard(rows, cols int) *Board {
	return &Board{
		Rows:      rows,
		Cols:      cols,
		cellIndex: make(map[Point][]EntityID),
	}
}

// Add inserts a new entity, assigning it a fresh or recycled EntityID and
// indexing its cell. Tanks are never recycled from the free list — see
// InitTanks.
func (b *Board) Add(e Entity) EntityID {
	var id EntityID
	if len(b.freeList) > 0 {
		id = b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		e.ID = id
		b.entities[id] = e
	} else {
		id = EntityID(len(b.entities))
		e.ID = id
		b.entities = append(b.entities, e)
	}

	b.indexAt(e.Pos, id)
	if e.Kind == KindShell {
		b.shellOrder = append(b.shellOrder, id)
	}
	return id
}

// indexAt appends id to the occupants of p. Multiple occupants arise
// when a tank moves into an occupied cell or a shell lands on one; the
// engine's collision passes remove such pairs, except a shell and a
// mine, which do not collide and may share a cell.
func (b *Board) indexAt(p Point, id EntityID) {
	b.cellIndex[p] = append(b.cellIndex[p], id)
}

func (b *Board) unindexAt(p Point, id EntityID) {
	occ := b.cellIndex[p]
	for i, o := range occ {
		if o == id {
			occ = append(occ[:i], occ[i+1:]...)
			break
		}
	}
	if len(occ) == 0 {
		delete(b.cellIndex, p)
	} else {
		b.cellIndex[p] = occ
	}
}

// Remove deletes a shell, wall, or mine entirely: unindexed, tombstoned,
// and its id recycled. Tanks must go through MarkDestroyed instead, since
// their ids stay stable for the whole match (invariant, spec.md §8.5).
func (b *Board) Remove(id EntityID) {
	e := &b.entities[id]
	if e.Kind == KindNone {
		return
	}
	if e.Kind == KindTank {
		panic("core: Remove called on a tank; use MarkDestroyed")
	}

	b.unindexAt(e.Pos, id)
	if e.Kind == KindShell {
		b.removeFromShellOrder(id)
	}

	*e = Entity{Kind: KindNone}
	b.freeList = append(b.freeList, id)
}

func (b *Board) removeFromShellOrder(id EntityID) {
	for i, s := range b.shellOrder {
		if s == id {
			b.shellOrder = append(b.shellOrder[:i], b.shellOrder[i+1:]...)
			return
		}
	}
}

// MarkDestroyed sets a tank's Alive flag false and removes it from the
// cell index, without recycling its EntityID (Design Notes §9d: named
// MarkDestroyed, never SetAlive).
func (b *Board) MarkDestroyed(id EntityID) {
	e := &b.entities[id]
	if e.Kind != KindTank || !e.Tank.Alive {
		return
	}
	b.unindexAt(e.Pos, id)
	e.Tank.Alive = false
}

// Get returns the entity for id, or false if it was never allocated or
// has been tombstoned.
func (b *Board) Get(id EntityID) (*Entity, bool) {
	if id < 0 || int(id) >= len(b.entities) {
		return nil, false
	}
	e := &b.entities[id]
	if e.Kind == KindNone {
		return nil, false
	}
	return e, true
}

// MoveEntity relocates an already-indexed entity to a new cell.
func (b *Board) MoveEntity(id EntityID, to Point) {
	e := &b.entities[id]
	b.unindexAt(e.Pos, id)
	e.Pos = to
	b.indexAt(to, id)
}

// At returns every entity id currently occupying p.
func (b *Board) At(p Point) []EntityID {
	occ := b.cellIndex[p]
	out := make([]EntityID, len(occ))
	copy(out, occ)
	return out
}

func (b *Board) WallAt(p Point) (EntityID, bool) {
	for _, id := range b.cellIndex[p] {
		if e := &b.entities[id]; e.Kind == KindWall {
			return id, true
		}
	}
	return 0, false
}

func (b *Board) MineAt(p Point) (EntityID, bool) {
	for _, id := range b.cellIndex[p] {
		if e := &b.entities[id]; e.Kind == KindMine {
			return id, true
		}
	}
	return 0, false
}

func (b *Board) TankAt(p Point) (EntityID, bool) {
	for _, id := range b.cellIndex[p] {
		if e := &b.entities[id]; e.Kind == KindTank && e.Tank.Alive {
			return id, true
		}
	}
	return 0, false
}

// ShellsAt returns the live shells occupying p.
func (b *Board) ShellsAt(p Point) []EntityID {
	var out []EntityID
	for _, id := range b.cellIndex[p] {
		if e := &b.entities[id]; e.Kind == KindShell {
			out = append(out, id)
		}
	}
	return out
}

// RebuildIndex reconciles the cell index to the current ownership list.
// Used after bulk removals where incremental index maintenance would be
// error-prone (Board §4.2).
func (b *Board) RebuildIndex() {
	b.cellIndex = make(map[Point][]EntityID)
	for i := range b.entities {
		e := &b.entities[i]
		if e.Kind == KindNone {
			continue
		}
		if e.Kind == KindTank && !e.Tank.Alive {
			continue
		}
		b.indexAt(e.Pos, e.ID)
	}
}

// EachKind returns every live entity id of the given kind, in arena
// order (i.e. insertion order, since ids are never reordered).
func (b *Board) EachKind(kind Kind) []EntityID {
	var out []EntityID
	for i := range b.entities {
		e := &b.entities[i]
		if e.Kind != kind {
			continue
		}
		if kind == KindTank && !e.Tank.Alive {
			continue
		}
		out = append(out, e.ID)
	}
	return out
}

// ShellOrder returns the ids of currently-live shells in insertion order
// (spec.md §5: "shells are advanced in insertion order").
func (b *Board) ShellOrder() []EntityID {
	out := make([]EntityID, len(b.shellOrder))
	copy(out, b.shellOrder)
	return out
}

// InitTanks assigns per-player tank ids 0..k-1 by sorting all spawned
// tanks by (x,y) ascending (spec.md §3), and records the stable
// EntityID each (playerID, tankID) maps to for the rest of the match.
// Call once, after all tanks have been added to the board.
func (b *Board) InitTanks(numPlayers int) {
	all := b.EachKind(KindTank)
	sort.Slice(all, func(i, j int) bool {
		pi, pj := b.entities[all[i]].Pos, b.entities[all[j]].Pos
		if pi.X != pj.X {
			return pi.X < pj.X
		}
		return pi.Y < pj.Y
	})

	b.tankIDs = make([][]EntityID, numPlayers)
	for _, id := range all {
		ts := b.entities[id].Tank
		pid := ts.PlayerID
		ts.TankID = len(b.tankIDs[pid])
		b.tankIDs[pid] = append(b.tankIDs[pid], id)
	}
}

// TankIDs returns the EntityIDs for player's tanks in ascending tank-id
// order, including dead ones (invariant, spec.md §8.5: ids stay
// contiguous and stable for the match).
func (b *Board) TankIDs(playerID int) []EntityID {
	if playerID < 0 || playerID >= len(b.tankIDs) {
		return nil
	}
	out := make([]EntityID, len(b.tankIDs[playerID]))
	copy(out, b.tankIDs[playerID])
	return out
}

// LiveTankCount returns how many of a player's tanks are still alive.
func (b *Board) LiveTankCount(playerID int) int {
	n := 0
	for _, id := range b.TankIDs(playerID) {
		if e, ok := b.Get(id); ok && e.Tank.Alive {
			n++
		}
	}
	return n
}

// NumPlayers reports how many players InitTanks was called with.
func (b *Board) NumPlayers() int { return len(b.tankIDs) }
