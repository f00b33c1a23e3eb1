package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/testutil"
)

func TestInitTanksAssignsTankIDsByPositionAscending(t *testing.T) {
	board := core.NewBoard(5, 5)
	// spawn out of (x,y) order to confirm InitTanks sorts, not insertion order
	far := board.SpawnTank(core.Point{X: 3, Y: 0}, core.U, 0, 3)
	near := board.SpawnTank(core.Point{X: 1, Y: 0}, core.U, 0, 3)
	board.SpawnTank(core.Point{X: 4, Y: 4}, core.L, 1, 3)
	board.InitTanks(2)

	nearEnt, _ := board.Get(near)
	farEnt, _ := board.Get(far)
	assert.Equal(t, 0, nearEnt.Tank.TankID)
	assert.Equal(t, 1, farEnt.Tank.TankID)
	assert.Equal(t, []core.EntityID{near, far}, board.TankIDs(0))
}

func TestRemoveOnTankPanics(t *testing.T) {
	board := core.NewBoard(3, 3)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	board.InitTanks(1)

	testutil.AssertPanic(t, func() { board.Remove(tank) }, "Remove must reject tanks; MarkDestroyed is the only way to retire one")
}

func TestMarkDestroyedKeepsEntityIDButClearsFromCellIndex(t *testing.T) {
	board, t1, _ := testutil.NewTwoTankBoard(5, 5, core.Point{X: 0, Y: 0}, core.Point{X: 4, Y: 4}, 3)

	board.MarkDestroyed(t1)

	ent, ok := board.Get(t1)
	require.True(t, ok, "a destroyed tank's id stays resolvable, per the stable-id invariant")
	assert.False(t, ent.Tank.Alive)
	_, found := board.TankAt(core.Point{X: 0, Y: 0})
	assert.False(t, found, "a dead tank no longer occupies its cell")
}

func TestShootIntoEmptyCellSpawnsShellAndArmsCooldown(t *testing.T) {
	board := core.NewBoard(5, 5)
	tank := board.SpawnTank(core.Point{X: 2, Y: 2}, core.R, 0, 3)
	board.InitTanks(1)

	shellID, ok := board.Shoot(tank)
	require.True(t, ok)

	shell, _ := board.Get(shellID)
	assert.Equal(t, core.Point{X: 2, Y: 3}, shell.Pos)
	assert.True(t, shell.Shell.FreshlySpawned)

	tankEnt, _ := board.Get(tank)
	assert.Equal(t, 2, tankEnt.Tank.Ammo)
	assert.Equal(t, 5, tankEnt.Tank.Cooldown)
}

func TestShootAbsorbedByFreshWallLeavesNoShell(t *testing.T) {
	board := core.NewBoard(5, 5)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	board.SpawnWall(core.Point{X: 0, Y: 1})
	board.InitTanks(1)

	_, ok := board.Shoot(tank)

	assert.False(t, ok)
	assert.Empty(t, board.ShellOrder())
}

func TestMoveForwardAndBackwardWrapToroidally(t *testing.T) {
	board, t1, _ := testutil.NewTwoTankBoard(3, 3, core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 2}, 3)
	board.RotateTankLeft(t1, 0) // no-op, confirms RotateLeft(0) leaves direction alone
	ent, _ := board.Get(t1)
	ent.Tank.Dir = core.U

	board.MoveForward(t1)
	moved, _ := board.Get(t1)
	assert.Equal(t, core.Point{X: 2, Y: 0}, moved.Pos, "moving U off row 0 wraps to the last row")

	board.MoveBackward(t1)
	back, _ := board.Get(t1)
	assert.Equal(t, core.Point{X: 0, Y: 0}, back.Pos)
}

func TestEachKindSkipsDeadTanks(t *testing.T) {
	board, t1, t2 := testutil.NewTwoTankBoard(4, 4, core.Point{X: 0, Y: 0}, core.Point{X: 3, Y: 3}, 3)
	board.MarkDestroyed(t1)

	live := board.EachKind(core.KindTank)
	assert.Equal(t, []core.EntityID{t2}, live)
	assert.Equal(t, 1, board.LiveTankCount(1))
	assert.Equal(t, 0, board.LiveTankCount(0))
}
