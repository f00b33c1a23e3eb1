package algorithm

import (
	"github.com/yaelsagi2/tanks-game3/internal/battleinfo"
	"github.com/yaelsagi2/tanks-game3/internal/core"
)

// all8 is the fixed iteration order used for "evaluate the 8 candidate
// destinations" in the shell-avoidance step and for BFS neighbor
// expansion. Order only affects tie-breaking, never legality.
var all8 = [8]core.Direction{core.U, core.UR, core.R, core.DR, core.D, core.DL, core.L, core.UL}

// HybridAlgorithm is the optional reference tank algorithm (spec.md
// §4.10): periodic battle-info polling, shell-avoidance when threatened,
// BFS chase of the nearest enemy otherwise, and an opportunistic shot
// when an enemy lines up along the cannon axis.
type HybridAlgorithm struct {
	playerID, tankID int
	infoInterval     int
	threatRadius     float64

	tick     int
	view     *battleinfo.View
	haveView bool

	// selfDir is the algorithm's own model of its cannon heading. The
	// engine never reports it back, so the algorithm tracks it from the
	// rotations it has issued (spec.md §4.10: "correct next tick from
	// its own remembered heading").
	selfDir core.Direction
}

// NewHybridAlgorithm constructs the reference algorithm for one tank.
// playerID is 0-indexed; canonical spawn heading is L for player 0, R
// for player 1 (spec.md §3).
func NewHybridAlgorithm(playerID, tankID, infoInterval int, threatRadius float64) *HybridAlgorithm {
	spawnDir := core.L
	if playerID != 0 {
		spawnDir = core.R
	}
	return &HybridAlgorithm{
		playerID:     playerID,
		tankID:       tankID,
		infoInterval: infoInterval,
		threatRadius: threatRadius,
		selfDir:      spawnDir,
	}
}

func (a *HybridAlgorithm) UpdateBattleInfo(view *battleinfo.View) {
	a.view = view
	a.haveView = true
}

func (a *HybridAlgorithm) GetAction() core.Action {
	a.tick++

	if !a.haveView || (a.infoInterval > 0 && a.tick%a.infoInterval == 0) {
		return core.ActionGetBattleInfo
	}

	self, shells, enemies, blocked := a.decode()

	if act, ok := a.tryShoot(self, enemies, blocked); ok {
		return act
	}

	if dir, evading := a.avoidShells(self, shells); evading {
		return a.turnOrMove(dir)
	}

	if dir, found := a.chaseNearestEnemy(self, enemies, blocked); found {
		return a.turnOrMove(dir)
	}

	return core.ActionDoNothing
}

// decode extracts positions relevant to decision-making from the last
// battle-info view: self, every shell, every enemy tank, and a
// blocked-cell predicate (walls and mines).
func (a *HybridAlgorithm) decode() (self core.Point, shells, enemies []core.Point, blocked map[core.Point]bool) {
	v := a.view
	blocked = make(map[core.Point]bool)
	enemyChar := byte('2')
	if a.playerID != 0 {
		enemyChar = '1'
	}

	for r := 0; r < v.Rows; r++ {
		for c := 0; c < v.Cols; c++ {
			p := core.Point{X: r, Y: c}
			switch v.At(r, c) {
			case battleinfo.CharSelf:
				self = p
			case battleinfo.CharShell:
				shells = append(shells, p)
			case battleinfo.CharWall, battleinfo.CharMine:
				blocked[p] = true
			case enemyChar:
				enemies = append(enemies, p)
			}
		}
	}
	return self, shells, enemies, blocked
}

// tryShoot prefers Shoot when an enemy lies within 3 forward cells
// along the cannon axis with nothing blocking the line (spec.md
// §4.10). The algorithm has no ground truth for ammo/cooldown, so it
// always attempts the shot and trusts the legality gate to drop it
// when premature.
func (a *HybridAlgorithm) tryShoot(self core.Point, enemies []core.Point, blocked map[core.Point]bool) (core.Action, bool) {
	off := a.selfDir.Offset()
	if off == (core.Point{}) {
		return 0, false
	}
	cursor := self
	rows, cols := a.view.Rows, a.view.Cols
	for step := 1; step <= 3; step++ {
		cursor = core.Wrap(cursor.Add(off), rows, cols)
		if blocked[cursor] {
			return 0, false
		}
		for _, e := range enemies {
			if e == cursor {
				return core.ActionShoot, true
			}
		}
	}
	return 0, false
}

// avoidShells implements the shell-avoidance step: among the 8
// candidate single-step destinations plus staying put, pick whichever
// maximizes the minimum toroidal distance to any known shell.
func (a *HybridAlgorithm) avoidShells(self core.Point, shells []core.Point) (core.Direction, bool) {
	if len(shells) == 0 {
		return core.None, false
	}
	rows, cols := a.view.Rows, a.view.Cols

	minDist := func(p core.Point) float64 {
		best := -1.0
		for _, s := range shells {
			d := core.ToroidalDistance(p, s, rows, cols)
			if best < 0 || d < best {
				best = d
			}
		}
		return best
	}

	threatened := minDist(self) < a.threatRadius
	if !threatened {
		return core.None, false
	}

	bestDir := core.None
	bestScore := minDist(self)
	for _, d := range all8 {
		candidate := core.Wrap(self.Add(d.Offset()), rows, cols)
		score := minDist(candidate)
		if score > bestScore {
			bestScore = score
			bestDir = d
		}
	}
	return bestDir, true
}

// chaseNearestEnemy runs BFS over free cells (not wall/mine) from self
// to the nearest enemy tank and returns the first step's direction.
func (a *HybridAlgorithm) chaseNearestEnemy(self core.Point, enemies []core.Point, blocked map[core.Point]bool) (core.Direction, bool) {
	if len(enemies) == 0 {
		return core.None, false
	}
	rows, cols := a.view.Rows, a.view.Cols

	goals := make(map[core.Point]bool, len(enemies))
	for _, e := range enemies {
		goals[e] = true
	}

	type node struct {
		pos      core.Point
		firstDir core.Direction
	}
	visited := map[core.Point]bool{self: true}
	queue := []node{{pos: self, firstDir: core.None}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if goals[cur.pos] && cur.pos != self {
			return cur.firstDir, true
		}

		for _, d := range all8 {
			next := core.Wrap(cur.pos.Add(d.Offset()), rows, cols)
			if visited[next] || blocked[next] {
				continue
			}
			visited[next] = true
			fd := cur.firstDir
			if fd == core.None {
				fd = d
			}
			queue = append(queue, node{pos: next, firstDir: fd})
		}
	}
	return core.None, false
}

// turnOrMove returns MoveForward if the algorithm's tracked heading
// already matches dir, otherwise the cheapest rotation toward it,
// updating the tracked heading to match what that rotation will
// produce.
func (a *HybridAlgorithm) turnOrMove(dir core.Direction) core.Action {
	if dir == core.None {
		return core.ActionDoNothing
	}
	if a.selfDir == dir {
		return core.ActionMoveForward
	}

	delta := a.selfDir.IndexDelta(dir)
	act := rotationFor(delta)
	a.selfDir = applyRotation(a.selfDir, act)
	return act
}

// rotationFor picks the cheapest single rotation step toward a signed
// compass-index delta in [-4,4] (spec.md §4.10). Deltas of magnitude 3
// or 4 take two ticks; this returns only this tick's step.
func rotationFor(delta int) core.Action {
	switch {
	case delta == 1:
		return core.ActionRotateRight45
	case delta == 2, delta == 3:
		return core.ActionRotateRight90
	case delta == 4:
		return core.ActionRotateRight90
	case delta == -1:
		return core.ActionRotateLeft45
	case delta == -2, delta == -3:
		return core.ActionRotateLeft90
	case delta == -4:
		return core.ActionRotateLeft90
	default:
		return core.ActionDoNothing
	}
}

func applyRotation(d core.Direction, act core.Action) core.Direction {
	switch act {
	case core.ActionRotateLeft45:
		return d.RotateLeft(1)
	case core.ActionRotateLeft90:
		return d.RotateLeft(2)
	case core.ActionRotateRight45:
		return d.RotateRight(1)
	case core.ActionRotateRight90:
		return d.RotateRight(2)
	default:
		return d
	}
}
