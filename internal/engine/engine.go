// Package engine implements the single-threaded, turn-based match
// scheduler (spec.md §4.6–§4.9, §5): gather actions, run the legality
// gate, execute approved actions in tank-id order, advance shells in
// two collision-checked sub-steps, then ask the end-of-game arbiter
// whether the match is over.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yaelsagi2/tanks-game3/internal/algorithm"
	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/events"
	"github.com/yaelsagi2/tanks-game3/internal/rules"
)

// Engine owns one match's board and runs it one tick at a time. It is
// not safe for concurrent use — the tournament driver's worker pool
// gives every match its own Engine (SPEC_FULL.md §5).
type Engine struct {
	Board    *core.Board
	MaxSteps int

	arbiter  *rules.Arbiter
	eventBus *events.EventBus
	logger   zerolog.Logger
	gameID   string

	algorithms  map[core.EntityID]algorithm.TankAlgorithm
	controllers [2]*algorithm.PlayerController

	tick     int
	gameOver bool
	result   rules.Result
	startedAt time.Time
}

// Config bundles everything NewEngine needs to wire up a fresh match.
type Config struct {
	Board              *core.Board
	MaxSteps           int
	ZeroShellCountdown int
	Algorithms         map[core.EntityID]algorithm.TankAlgorithm
	Controllers        [2]*algorithm.PlayerController
	EventBus           *events.EventBus
	GameID             string
	Logger             zerolog.Logger
}

func NewEngine(cfg Config) *Engine {
	eventBus := cfg.EventBus
	if eventBus == nil {
		eventBus = events.NewEventBus()
	}
	return &Engine{
		Board:       cfg.Board,
		MaxSteps:    cfg.MaxSteps,
		arbiter:     rules.NewArbiter(cfg.ZeroShellCountdown),
		eventBus:    eventBus,
		logger:      cfg.Logger.With().Str("component", "engine").Str("game_id", cfg.GameID).Logger(),
		gameID:      cfg.GameID,
		algorithms:  cfg.Algorithms,
		controllers: cfg.Controllers,
		startedAt:   time.Now(),
	}
}

func (e *Engine) Tick() int            { return e.tick }
func (e *Engine) IsGameOver() bool     { return e.gameOver }
func (e *Engine) Result() rules.Result { return e.result }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Step advances the match by exactly one tick. ctx is checked only at
// the boundary between ticks, never mid-resolution (spec.md §5):
// shells and collisions within a tick always run to completion.
func (e *Engine) Step(ctx context.Context) (rules.Result, error) {
	if err := e.checkContext(ctx, "before tick"); err != nil {
		return e.result, err
	}
	if e.gameOver {
		return e.result, core.WrapInvariant(e.tick, "step", core.ErrGameOver)
	}

	var stepErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error().
					Interface("panic", r).
					Int("tick", e.tick+1).
					Msg("engine tick panicked, aborting match")
				stepErr = core.WrapInvariant(e.tick+1, "tick", fmt.Errorf("%w: recovered panic: %v", core.ErrInvariantViolation, r))
			}
		}()
		e.runTick()
	}()
	if stepErr != nil {
		e.gameOver = true
		return e.result, stepErr
	}
	return e.result, nil
}

// runTick is the ordered body of one tick; Step wraps it in a panic
// boundary so a misbehaving TankAlgorithm cannot crash the tournament
// process (SPEC_FULL.md §7, grounded on the teacher's gRPC
// recoveryInterceptor).
func (e *Engine) runTick() {
	e.tick++
	tickLogger := e.logger.With().Int("tick", e.tick).Logger()
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, e.tick))
	turnStart := time.Now()

	shotThisTick := make(map[core.EntityID]bool)
	for _, id := range e.liveTanksInOrder() {
		action := e.safeGetAction(id, tickLogger)
		e.executeOne(id, action, tickLogger, shotThisTick)
	}

	e.resolveCollisions(0, nil, tickLogger)
	for sub := 1; sub <= 2; sub++ {
		candidates := e.advanceShellCandidates()
		e.resolveCollisions(sub, candidates, tickLogger)
		e.commitShellMoves(candidates)
	}
	e.clearFreshlySpawned()

	for _, id := range e.liveTanksInOrder() {
		if !shotThisTick[id] {
			e.Board.CooldownTick(id)
		}
	}

	e.result = e.arbiter.Evaluate(e.Board, e.tick, e.MaxSteps)
	e.eventBus.Publish(events.NewTurnEndedEvent(e.gameID, e.tick, time.Since(turnStart)))

	if e.result.Over {
		e.gameOver = true
		e.eventBus.Publish(events.NewGameEndedEvent(
			e.gameID, e.result.Winner, e.result.Reason, e.result.RemainingTanks,
			e.tick, time.Since(e.startedAt),
		))
		tickLogger.Info().
			Int("winner", e.result.Winner).
			Str("reason", e.result.Reason.String()).
			Msg("match ended")
	}
}

// liveTanksInOrder returns every currently-alive tank's EntityID,
// ordered by (playerID, tankID) ascending — the deterministic
// processing order of spec.md §3/§4.6.
func (e *Engine) liveTanksInOrder() []core.EntityID {
	var out []core.EntityID
	for pid := 0; pid < e.Board.NumPlayers(); pid++ {
		for _, id := range e.Board.TankIDs(pid) {
			if ent, ok := e.Board.Get(id); ok && ent.Tank.Alive {
				out = append(out, id)
			}
		}
	}
	return out
}

// safeGetAction calls into third-party algorithm code with a panic
// guard; a misbehaving algorithm degrades to DoNothing rather than
// taking down the whole match.
func (e *Engine) safeGetAction(id core.EntityID, logger zerolog.Logger) (action core.Action) {
	action = core.ActionDoNothing
	algo := e.algorithms[id]
	if algo == nil {
		return action
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Int64("entity_id", int64(id)).Msg("algorithm GetAction panicked")
			action = core.ActionDoNothing
		}
	}()
	return algo.GetAction()
}

func (e *Engine) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		e.logger.Warn().Err(ctx.Err()).Str("phase", phase).Msg("match step cancelled")
		return ctx.Err()
	default:
		return nil
	}
}
