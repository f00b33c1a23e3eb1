package engine

import (
	"github.com/rs/zerolog"

	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/events"
)

// advanceShellCandidates computes each live, non-dwelling shell's next
// cell without moving it yet (spec.md §4.7: collisions are resolved
// against the candidate cell before positions update). A freshly
// spawned shell's candidate is its own current cell — it dwells this
// tick but still takes part in collision checks.
func (e *Engine) advanceShellCandidates() map[core.EntityID]core.Point {
	candidates := make(map[core.EntityID]core.Point)
	for _, id := range e.Board.ShellOrder() {
		ent, ok := e.Board.Get(id)
		if !ok {
			continue
		}
		if ent.Shell.FreshlySpawned {
			candidates[id] = ent.Pos
			continue
		}
		candidates[id] = core.Wrap(ent.Pos.Add(ent.Shell.Dir.Offset()), e.Board.Rows, e.Board.Cols)
	}
	return candidates
}

// commitShellMoves relocates every shell that survived resolveCollisions
// to its candidate cell. Shells already removed are simply absent from
// the board and Get returns false, so this is safe to call unconditionally.
func (e *Engine) commitShellMoves(candidates map[core.EntityID]core.Point) {
	for id, to := range candidates {
		if _, ok := e.Board.Get(id); !ok {
			continue
		}
		e.Board.MoveEntity(id, to)
	}
}

func (e *Engine) clearFreshlySpawned() {
	for _, id := range e.Board.ShellOrder() {
		if ent, ok := e.Board.Get(id); ok {
			ent.Shell.FreshlySpawned = false
		}
	}
}

// resolveCollisions runs the five ordered collision classes of
// spec.md §4.7 as one pass. shellCandidates is nil for the
// post-action-execution pass (shells are checked at their current,
// unmoved cell — this is what makes Open Question (a), "shoot into an
// enemy cell is an immediate hit", fall out naturally) and non-nil for
// the two shell-advance sub-step passes. Every class's destruction set
// is computed against the pass's starting state and only unioned and
// applied at the end, so the fixed ordering affects logging only, not
// outcomes (spec.md §4.7).
func (e *Engine) resolveCollisions(subStep int, shellCandidates map[core.EntityID]core.Point, logger zerolog.Logger) {
	b := e.Board
	shellPos := func(id core.EntityID, ent *core.Entity) core.Point {
		if shellCandidates == nil {
			return ent.Pos
		}
		if p, ok := shellCandidates[id]; ok {
			return p
		}
		return ent.Pos
	}

	destroyedShells := make(map[core.EntityID]bool)
	destroyedTanks := make(map[core.EntityID]string)
	destroyedMines := make(map[core.EntityID]bool)

	// 1. shell x wall — processed in shell-insertion order so repeated
	// hits on the same wall within one pass still behave like two
	// sequential shots (outcome-equivalent to computing it any other way).
	for _, sid := range b.ShellOrder() {
		sent, ok := b.Get(sid)
		if !ok {
			continue
		}
		pos := shellPos(sid, sent)
		if wallID, ok := b.WallAt(pos); ok {
			destroyedShells[sid] = true
			w := mustWall(b, wallID)
			if w.Hits == 0 {
				w.Hits = 1
			} else {
				b.Remove(wallID)
			}
			e.publishCollision(subStep, "shell_wall", pos, []core.EntityID{sid})
		}
	}

	// 2. shell x tank
	for _, sid := range b.ShellOrder() {
		if destroyedShells[sid] {
			continue
		}
		sent, ok := b.Get(sid)
		if !ok {
			continue
		}
		pos := shellPos(sid, sent)
		if tid, ok := b.TankAt(pos); ok {
			destroyedShells[sid] = true
			destroyedTanks[tid] = "shell"
			e.publishCollision(subStep, "shell_tank", pos, []core.EntityID{sid, tid})
		}
	}

	// 3. shell x shell — group survivors by landing cell, then check
	// every remaining pair for a swap-through: two shells one cell apart
	// closing on each other land on each other's current cell rather
	// than a shared one, and still meet mid-air (spec.md §4.7/§8;
	// original_source/tanks_game3/GameManager.cpp's
	// checkShellFutureCollisions compares each shell's future cell
	// against every other shell's current cell the same way).
	type shellPosInfo struct {
		cur, cand core.Point
	}
	infos := make(map[core.EntityID]shellPosInfo)
	var order []core.EntityID
	for _, sid := range b.ShellOrder() {
		if destroyedShells[sid] {
			continue
		}
		sent, ok := b.Get(sid)
		if !ok {
			continue
		}
		infos[sid] = shellPosInfo{cur: sent.Pos, cand: shellPos(sid, sent)}
		order = append(order, sid)
	}

	byCell := make(map[core.Point][]core.EntityID)
	for _, sid := range order {
		byCell[infos[sid].cand] = append(byCell[infos[sid].cand], sid)
	}
	for pos, group := range byCell {
		if len(group) < 2 {
			continue
		}
		for _, sid := range group {
			destroyedShells[sid] = true
		}
		e.publishCollision(subStep, "shell_shell", pos, group)
	}

	for i := 0; i < len(order); i++ {
		a := order[i]
		if destroyedShells[a] {
			continue
		}
		for j := i + 1; j < len(order); j++ {
			bid := order[j]
			if destroyedShells[bid] {
				continue
			}
			ia, ib := infos[a], infos[bid]
			if ia.cand == ib.cur && ib.cand == ia.cur {
				destroyedShells[a] = true
				destroyedShells[bid] = true
				e.publishCollision(subStep, "shell_shell_swap", ia.cand, []core.EntityID{a, bid})
			}
		}
	}

	// 4. tank x mine — tanks only move during action execution, so this
	// only fires anything new on the pass immediately following it.
	for _, mid := range b.EachKind(core.KindMine) {
		ment, ok := b.Get(mid)
		if !ok {
			continue
		}
		if tid, ok := b.TankAt(ment.Pos); ok {
			destroyedMines[mid] = true
			destroyedTanks[tid] = "mine"
			e.publishCollision(subStep, "tank_mine", ment.Pos, []core.EntityID{tid, mid})
		}
	}

	// 5. tank x tank — group live tanks by current cell.
	tankByCell := make(map[core.Point][]core.EntityID)
	for _, tid := range b.EachKind(core.KindTank) {
		if _, already := destroyedTanks[tid]; already {
			continue
		}
		tent, ok := b.Get(tid)
		if !ok {
			continue
		}
		tankByCell[tent.Pos] = append(tankByCell[tent.Pos], tid)
	}
	for pos, group := range tankByCell {
		if len(group) < 2 {
			continue
		}
		for _, tid := range group {
			destroyedTanks[tid] = "tank"
		}
		e.publishCollision(subStep, "tank_tank", pos, group)
	}

	for sid := range destroyedShells {
		b.Remove(sid)
	}
	for mid := range destroyedMines {
		b.Remove(mid)
	}
	for tid, cause := range destroyedTanks {
		tent, ok := b.Get(tid)
		if !ok {
			continue
		}
		b.MarkDestroyed(tid)
		e.eventBus.Publish(events.NewTankDestroyedEvent(e.gameID, e.tick, tent.Tank.PlayerID, tent.Tank.TankID, cause))
		logger.Debug().Int("player_id", tent.Tank.PlayerID).Int("tank_id", tent.Tank.TankID).Str("cause", cause).Msg("tank destroyed")
	}
}

func (e *Engine) publishCollision(subStep int, class string, pos core.Point, destroyed []core.EntityID) {
	e.eventBus.Publish(events.NewShellCollisionResolvedEvent(e.gameID, e.tick, subStep, class, pos, destroyed))
}

func mustWall(b *core.Board, id core.EntityID) *core.WallState {
	ent, _ := b.Get(id)
	return ent.Wall
}
