package testutil

import "github.com/yaelsagi2/tanks-game3/internal/core"

// NewTwoTankBoard builds a board with one tank per player at the given
// positions, spawned with ammo and initialized via InitTanks(2) — the
// two-player setup used by the core board tests.
func NewTwoTankBoard(rows, cols int, p1Pos, p2Pos core.Point, ammo int) (*core.Board, core.EntityID, core.EntityID) {
	board := core.NewBoard(rows, cols)
	t1 := board.SpawnTank(p1Pos, core.L, 0, ammo)
	t2 := board.SpawnTank(p2Pos, core.R, 1, ammo)
	board.InitTanks(2)
	return board, t1, t2
}
