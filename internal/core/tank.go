package core

// SpawnTank places a new tank at pos facing dir, owned by playerID, with
// the given ammo. TankID is assigned later in bulk by Board.InitTanks.
func (b *Board) SpawnTank(pos Point, dir Direction, playerID, ammo int) EntityID {
	return b.Add(Entity{
		Kind: KindTank,
		Pos:  pos,
		Tank: &TankState{
			PlayerID: playerID,
			Dir:      dir,
			Ammo:     ammo,
			Alive:    true,
		},
	})
}

func (b *Board) SpawnWall(pos Point) EntityID {
	return b.Add(Entity{Kind: KindWall, Pos: pos, Wall: &WallState{}})
}

func (b *Board) SpawnMine(pos Point) EntityID {
	return b.Add(Entity{Kind: KindMine, Pos: pos, Mine: &MineState{}})
}

// RotateTankLeft updates a tank's cannon direction only; it never moves.
func (b *Board) RotateTankLeft(id EntityID, k int) {
	t := b.entities[id].Tank
	t.Dir = t.Dir.RotateLeft(k)
}

func (b *Board) RotateTankRight(id EntityID, k int) {
	t := b.entities[id].Tank
	t.Dir = t.Dir.RotateRight(k)
}

// ForwardDestination returns the toroidal cell a tank would occupy after
// MoveForward, without moving it.
func (b *Board) ForwardDestination(id EntityID) Point {
	e := &b.entities[id]
	return Wrap(e.Pos.Add(e.Tank.Dir.Offset()), b.Rows, b.Cols)
}

// BackwardDestination returns the toroidal cell a tank would occupy after
// MoveBackward, without moving it.
func (b *Board) BackwardDestination(id EntityID) Point {
	e := &b.entities[id]
	back := Point{X: -e.Tank.Dir.Offset().X, Y: -e.Tank.Dir.Offset().Y}
	return Wrap(e.Pos.Add(back), b.Rows, b.Cols)
}

// MoveForward relocates the tank to its forward cell (cannon direction
// unchanged).
func (b *Board) MoveForward(id EntityID) {
	b.MoveEntity(id, b.ForwardDestination(id))
}

// MoveBackward relocates the tank to the cell opposite its cannon
// direction (cannon direction unchanged).
func (b *Board) MoveBackward(id EntityID) {
	b.MoveEntity(id, b.BackwardDestination(id))
}

// Shoot fires a shell from the tank's forward-adjacent cell along its
// cannon direction, decrementing ammo and arming the cooldown. If that
// cell holds a wall, the spawn itself is the first (or destroying)
// impact and no shell is placed (spec.md §4.3). Returns the new shell's
// id, or false if the shot was absorbed by a wall.
func (b *Board) Shoot(id EntityID) (EntityID, bool) {
	e := &b.entities[id]
	t := e.Tank
	t.Ammo--
	t.Cooldown = 5

	spawn := b.ForwardDestination(id)
	if wallID, ok := b.WallAt(spawn); ok {
		b.hitWall(wallID)
		return 0, false
	}

	shellID := b.Add(Entity{
		Kind: KindShell,
		Pos:  spawn,
		Shell: &ShellState{
			Dir:            t.Dir,
			OwnerPlayerID:  t.PlayerID,
			OwnerTankID:    t.TankID,
			FreshlySpawned: true,
		},
	})
	return shellID, true
}

// hitWall increments a wall's hit counter, destroying it on the second
// hit.
func (b *Board) hitWall(id EntityID) {
	w := b.entities[id].Wall
	if w.Hits == 0 {
		w.Hits = 1
		return
	}
	b.Remove(id)
}

func (b *Board) CanShoot(id EntityID) bool {
	return b.entities[id].Tank.CanShoot()
}

// CooldownTick decrements a tank's shoot cooldown by one tick unless it
// is already 0. The engine never calls this for a tank on the same
// tick Shoot set its cooldown to 5 (spec.md §4.6: "a cooldown set to 5
// this tick first decrements next tick") — that exemption is the
// caller's responsibility (engine.Engine tracks shotThisTick), not
// this primitive's.
func (b *Board) CooldownTick(id EntityID) {
	t := b.entities[id].Tank
	if t.Cooldown > 0 {
		t.Cooldown--
	}
}
