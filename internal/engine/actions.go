package engine

import (
	"github.com/rs/zerolog"

	"github.com/yaelsagi2/tanks-game3/internal/battleinfo"
	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/events"
	"github.com/yaelsagi2/tanks-game3/internal/rules"
)

// executeOne runs the legality gate for id's requested action and, if
// approved, applies its effect (spec.md §4.5–§4.6). shotThisTick
// records tanks exempt from this tick's cooldown decrement.
func (e *Engine) executeOne(id core.EntityID, action core.Action, logger zerolog.Logger, shotThisTick map[core.EntityID]bool) {
	ent, ok := e.Board.Get(id)
	if !ok || !ent.Tank.Alive {
		return
	}

	t := ent.Tank
	// Captured before Check, which itself applies the backward-phase
	// cancellation side effect of spec.md §4.5 for phases 1/2 — by the
	// time we reach execution that mutation may have already happened,
	// so MoveForward's own "was a reverse pending" decision (§4.6) must
	// not be re-derived from the post-Check value.
	hadPendingReverse := t.BackwardPhase > 0

	verdict := rules.Check(e.Board, id, action)
	if !verdict.Legal {
		e.eventBus.Publish(events.NewActionRejectedEvent(e.gameID, e.tick, t.PlayerID, t.TankID, action, verdict.Reason))
		logger.Debug().
			Int("player_id", t.PlayerID).Int("tank_id", t.TankID).
			Str("action", action.String()).Str("reason", verdict.Reason).
			Msg("action rejected")
		return
	}

	switch action {
	case core.ActionMoveForward:
		if hadPendingReverse {
			t.BackwardPhase = 0
		} else {
			e.Board.MoveForward(id)
		}
	case core.ActionMoveBackward:
		switch t.BackwardPhase {
		case 0:
			t.BackwardPhase = 1
		case 1:
			t.BackwardPhase = 2
		case 2:
			t.BackwardPhase = 3
		case 3:
			e.Board.MoveBackward(id)
			t.BackwardPhase = 0
		}
	case core.ActionRotateLeft45:
		e.Board.RotateTankLeft(id, 1)
	case core.ActionRotateLeft90:
		e.Board.RotateTankLeft(id, 2)
	case core.ActionRotateRight45:
		e.Board.RotateTankRight(id, 1)
	case core.ActionRotateRight90:
		e.Board.RotateTankRight(id, 2)
	case core.ActionShoot:
		e.Board.Shoot(id)
		shotThisTick[id] = true
	case core.ActionGetBattleInfo:
		if t.BackwardPhase == 1 || t.BackwardPhase == 2 {
			t.BackwardPhase = 0
		}
		e.deliverBattleInfo(id, t.PlayerID, logger)
	case core.ActionDoNothing:
		// no-op
	}
}

// deliverBattleInfo builds the requesting tank's view and forwards it
// through its owning player's controller (spec.md §4.8).
func (e *Engine) deliverBattleInfo(id core.EntityID, playerID int, logger zerolog.Logger) {
	algo := e.algorithms[id]
	if algo == nil {
		return
	}
	view := battleinfo.Build(e.Board, id)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Int64("entity_id", int64(id)).Msg("algorithm UpdateBattleInfo panicked")
		}
	}()
	if playerID >= 0 && playerID < len(e.controllers) && e.controllers[playerID] != nil {
		e.controllers[playerID].UpdateTankWithBattleInfo(algo, view)
		return
	}
	algo.UpdateBattleInfo(view)
}
