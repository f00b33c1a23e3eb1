package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/yaelsagi2/tanks-game3/internal/events"
)

// Transition records one phase change for after-the-fact diagnostics.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages match phase transitions and keeps a bounded
// history of them. It does not gate engine.Engine.Step — see the
// package doc.
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   GamePhase
	states         map[GamePhase]State
	context        *GameContext
	history        []Transition
	maxHistorySize int
	eventBus       *events.EventBus
}

func NewStateMachine(ctx *GameContext, eventBus *events.EventBus) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[GamePhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 16),
		maxHistorySize: 256,
		eventBus:       eventBus,
	}
	sm.registerDefaultStates()
	return sm
}

func (sm *StateMachine) registerDefaultStates() {
	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewStartingState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewPausedState())
	sm.RegisterState(NewEndingState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewErrorState())
}

func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase
}

// TransitionTo attempts to move to targetPhase, running Exit on the
// current state and Enter on the target, in that order.
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrent := sm.states[sm.currentPhase]
	targetState, hasTarget := sm.states[targetPhase]
	if !hasTarget {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrent {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase
	sm.addToHistory(Transition{From: previousPhase, To: targetPhase, Timestamp: time.Now(), Reason: reason})

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(sm.context.GameID, previousPhase.String(), targetPhase.String(), reason))
	}

	sm.context.Logger.Info().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("state transition completed")

	return nil
}

func (sm *StateMachine) addToHistory(t Transition) {
	sm.history = append(sm.history, t)
	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]Transition, len(sm.history))
	copy(out, sm.history)
	return out
}

func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase.CanTransitionTo(targetPhase)
}
