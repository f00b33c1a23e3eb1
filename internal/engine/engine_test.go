package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaelsagi2/tanks-game3/internal/algorithm"
	"github.com/yaelsagi2/tanks-game3/internal/battleinfo"
	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/events"
)

// scriptedAlgorithm returns a fixed action for a given tick (1-indexed)
// and DoNothing otherwise, exercising Engine without a real algorithm.
type scriptedAlgorithm struct {
	byTick map[int]core.Action
	tick   int
	views  []*battleinfo.View
}

func (s *scriptedAlgorithm) GetAction() core.Action {
	s.tick++
	if a, ok := s.byTick[s.tick]; ok {
		return a
	}
	return core.ActionDoNothing
}

func (s *scriptedAlgorithm) UpdateBattleInfo(v *battleinfo.View) {
	s.views = append(s.views, v)
}

func newTestEngine(t *testing.T, rows, cols, maxSteps int, algos map[core.EntityID]algorithm.TankAlgorithm) (*Engine, *core.Board) {
	t.Helper()
	board := core.NewBoard(rows, cols)
	eng := NewEngine(Config{
		Board:              board,
		MaxSteps:           maxSteps,
		ZeroShellCountdown: 40,
		Algorithms:         algos,
		EventBus:           events.NewEventBus(),
		GameID:             "test",
		Logger:             zerolog.Nop(),
	})
	return eng, board
}

func TestDirectHitShellsAnnihilate(t *testing.T) {
	board := core.NewBoard(5, 5)
	t1 := board.SpawnTank(core.Point{X: 2, Y: 0}, core.R, 0, 3)
	t2 := board.SpawnTank(core.Point{X: 2, Y: 4}, core.L, 1, 3)
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		t1: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
		t2: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 100, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "s1", Logger: zerolog.Nop()})

	ctx := context.Background()
	_, err := eng.Step(ctx)
	require.NoError(t, err)
	require.Len(t, board.ShellOrder(), 2, "both shells should be freshly spawned and alive after tick 1")

	_, err = eng.Step(ctx)
	require.NoError(t, err)
	assert.Empty(t, board.ShellOrder(), "shells should annihilate at (2,2) in tick 2's first sub-step")
	assert.True(t, mustAlive(t, board, t1))
	assert.True(t, mustAlive(t, board, t2))
}

func TestShellsSwappingCellsAnnihilateWithoutReachingTanks(t *testing.T) {
	// Tanks one cell apart from their shells' meeting point: the spawned
	// shells land one cell apart and close on each other, so their
	// candidate cells cross rather than coincide (spec.md §4.7/§8 — a
	// swap-through must still destroy both shells, not let them pass).
	board := core.NewBoard(1, 5)
	t1 := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	t2 := board.SpawnTank(core.Point{X: 0, Y: 3}, core.L, 1, 3)
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		t1: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
		t2: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 100, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "swap1", Logger: zerolog.Nop()})

	ctx := context.Background()
	_, err := eng.Step(ctx)
	require.NoError(t, err)
	require.Len(t, board.ShellOrder(), 2, "both shells freshly spawned at (0,1) and (0,2), one cell apart")

	_, err = eng.Step(ctx)
	require.NoError(t, err)
	assert.Empty(t, board.ShellOrder(), "the shells swap cells in tick 2's first sub-step and both destruct")
	assert.True(t, mustAlive(t, board, t1), "the swap must destroy the shells before either reaches a tank")
	assert.True(t, mustAlive(t, board, t2))
}

func TestShootIntoAdjacentWallFirstHitAbsorbsShell(t *testing.T) {
	board := core.NewBoard(1, 5)
	shooter := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	wallID := board.SpawnWall(core.Point{X: 0, Y: 1})
	board.InitTanks(1)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		shooter: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "wall1", Logger: zerolog.Nop()})

	_, err := eng.Step(context.Background())
	require.NoError(t, err)

	assert.Empty(t, board.ShellOrder(), "a shot spawning directly into a wall never places a shell")
	wall, ok := board.Get(wallID)
	require.True(t, ok, "wall survives its first hit")
	assert.Equal(t, 1, wall.Wall.Hits)
	tank, _ := board.Get(shooter)
	assert.Equal(t, 2, tank.Tank.Ammo)
}

func TestShootIntoAdjacentWallSecondHitDestroysBoth(t *testing.T) {
	board := core.NewBoard(1, 5)
	shooter := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	wallID := board.SpawnWall(core.Point{X: 0, Y: 1})
	board.InitTanks(1)
	wallEnt, _ := board.Get(wallID)
	wallEnt.Wall.Hits = 1 // simulate an already-absorbed first hit

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		shooter: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "wall2", Logger: zerolog.Nop()})

	_, err := eng.Step(context.Background())
	require.NoError(t, err)

	assert.Empty(t, board.ShellOrder())
	_, ok := board.Get(wallID)
	assert.False(t, ok, "a wall already hit once is destroyed by a second hit, taking the shell with it")
}

func TestCooldownGatesRepeatedShoot(t *testing.T) {
	board := core.NewBoard(5, 5)
	shooter := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	other := board.SpawnTank(core.Point{X: 4, Y: 4}, core.L, 1, 3)
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		shooter: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot, 2: core.ActionShoot}},
		other:   &scriptedAlgorithm{},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "cooldown-gate", Logger: zerolog.Nop()})

	ctx := context.Background()
	_, err := eng.Step(ctx)
	require.NoError(t, err)
	_, err = eng.Step(ctx)
	require.NoError(t, err)

	tank, _ := board.Get(shooter)
	assert.Equal(t, 2, tank.Tank.Ammo, "the tick-2 shot was illegal while cooldown was still armed, so ammo only dropped once")
}

func TestReverseCancel(t *testing.T) {
	board := core.NewBoard(5, 5)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	other := board.SpawnTank(core.Point{X: 4, Y: 4}, core.L, 1, 3)
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		tank:  &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionMoveBackward, 2: core.ActionMoveForward}},
		other: &scriptedAlgorithm{},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "s3", Logger: zerolog.Nop()})

	ctx := context.Background()
	_, err := eng.Step(ctx)
	require.NoError(t, err)
	_, err = eng.Step(ctx)
	require.NoError(t, err)

	ent, ok := board.Get(tank)
	require.True(t, ok)
	assert.Equal(t, core.Point{X: 0, Y: 0}, ent.Pos)
	assert.Equal(t, 0, ent.Tank.BackwardPhase)
}

func TestMineDestroysTankAndEndsMatch(t *testing.T) {
	board := core.NewBoard(5, 5)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	other := board.SpawnTank(core.Point{X: 4, Y: 4}, core.L, 1, 3)
	board.SpawnMine(core.Point{X: 0, Y: 1})
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		tank:  &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionMoveForward}},
		other: &scriptedAlgorithm{},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "s5", Logger: zerolog.Nop()})

	result, err := eng.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Over)
	assert.Equal(t, 2, result.Winner)
	assert.Equal(t, [2]int{0, 1}, result.RemainingTanks)
}

func TestSimultaneousSpawnIntoSameCellCollides(t *testing.T) {
	board := core.NewBoard(1, 3)
	t1 := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 3)
	t2 := board.SpawnTank(core.Point{X: 0, Y: 2}, core.L, 1, 3)
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		t1: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
		t2: &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "s6", Logger: zerolog.Nop()})

	_, err := eng.Step(context.Background())
	require.NoError(t, err)

	assert.Empty(t, board.ShellOrder(), "both shells spawn at (0,1) and annihilate immediately")
	assert.True(t, mustAlive(t, board, t1))
	assert.True(t, mustAlive(t, board, t2))
	ent1, _ := board.Get(t1)
	ent2, _ := board.Get(t2)
	assert.Equal(t, 5, ent1.Tank.Cooldown)
	assert.Equal(t, 5, ent2.Tank.Cooldown)
}

func TestCooldownTicksExceptOnShootTick(t *testing.T) {
	board := core.NewBoard(5, 5)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 1)
	other := board.SpawnTank(core.Point{X: 4, Y: 4}, core.L, 1, 1)
	board.InitTanks(2)

	algos := map[core.EntityID]algorithm.TankAlgorithm{
		tank:  &scriptedAlgorithm{byTick: map[int]core.Action{1: core.ActionShoot}},
		other: &scriptedAlgorithm{},
	}
	eng := NewEngine(Config{Board: board, MaxSteps: 10, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "cooldown", Logger: zerolog.Nop()})

	_, err := eng.Step(context.Background())
	require.NoError(t, err)
	ent, _ := board.Get(tank)
	assert.Equal(t, 5, ent.Tank.Cooldown, "cooldown must not decrement on the tick it was just set")

	_, err = eng.Step(context.Background())
	require.NoError(t, err)
	ent, _ = board.Get(tank)
	assert.Equal(t, 4, ent.Tank.Cooldown)
}

func TestStepAfterGameOverReturnsError(t *testing.T) {
	board := core.NewBoard(3, 3)
	tank := board.SpawnTank(core.Point{X: 0, Y: 0}, core.R, 0, 1)
	board.InitTanks(1)

	algos := map[core.EntityID]algorithm.TankAlgorithm{tank: &scriptedAlgorithm{}}
	eng := NewEngine(Config{Board: board, MaxSteps: 1, ZeroShellCountdown: 40, Algorithms: algos, EventBus: events.NewEventBus(), GameID: "over", Logger: zerolog.Nop()})

	result, err := eng.Step(context.Background())
	require.NoError(t, err)
	require.True(t, result.Over)

	_, err = eng.Step(context.Background())
	assert.Error(t, err)
}

func mustAlive(t *testing.T, board *core.Board, id core.EntityID) bool {
	t.Helper()
	ent, ok := board.Get(id)
	require.True(t, ok)
	return ent.Tank.Alive
}
