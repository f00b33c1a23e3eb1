package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaelsagi2/tanks-game3/internal/core"
)

func TestCooldownTickNeverGoesNegative(t *testing.T) {
	board := core.NewBoard(3, 3)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 1)
	board.InitTanks(1)

	board.CooldownTick(tank)
	ent, _ := board.Get(tank)
	assert.Equal(t, 0, ent.Tank.Cooldown)
}

func TestSecondHitDestroysWallAndShotIsStillAbsorbed(t *testing.T) {
	board := core.NewBoard(3, 3)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 2)
	wallID := board.SpawnWall(core.Point{X: 0, Y: 1})
	board.InitTanks(1)

	_, ok := board.Shoot(tank)
	assert.False(t, ok)
	wall, _ := board.Get(wallID)
	assert.Equal(t, 1, wall.Wall.Hits)

	tankEnt, _ := board.Get(tank)
	tankEnt.Tank.Cooldown = 0 // simulate cooldown having elapsed between shots
	_, ok = board.Shoot(tank)
	assert.False(t, ok)
	_, stillThere := board.Get(wallID)
	assert.False(t, stillThere, "a wall destroyed on its second hit is gone")
}

func TestCanShootRequiresAliveAmmoAndZeroCooldown(t *testing.T) {
	board := core.NewBoard(3, 3)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 0)
	board.InitTanks(1)

	assert.False(t, board.CanShoot(tank), "no ammo means no shot")

	ent, _ := board.Get(tank)
	ent.Tank.Ammo = 1
	ent.Tank.Cooldown = 3
	assert.False(t, board.CanShoot(tank), "armed cooldown blocks a shot")

	ent.Tank.Cooldown = 0
	assert.True(t, board.CanShoot(tank))
}
