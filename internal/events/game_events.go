package events

import (
	"time"

	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/rules"
)

const (
	TypeTurnStarted           = "turn.started"
	TypeTurnEnded             = "turn.ended"
	TypeActionRejected        = "action.rejected"
	TypeShellCollisionResolved = "shell.collision_resolved"
	TypeTankDestroyed         = "tank.destroyed"
	TypeGameEnded             = "game.ended"
	TypeStateTransition       = "state.transition"
)

// StateTransitionEvent is published whenever the match lifecycle state
// machine (internal/states) moves between phases.
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: BaseEvent{EventType: TypeStateTransition, Time: time.Now(), Game: gameID},
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

// TurnStartedEvent is published before actions are gathered for a tick.
type TurnStartedEvent struct {
	BaseEvent
	Tick int
}

func NewTurnStartedEvent(gameID string, tick int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: BaseEvent{EventType: TypeTurnStarted, Time: time.Now(), Game: gameID},
		Tick:      tick,
	}
}

// TurnEndedEvent is published once a tick's arbitration completes.
type TurnEndedEvent struct {
	BaseEvent
	Tick          int
	ProcessedTime time.Duration
}

func NewTurnEndedEvent(gameID string, tick int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     BaseEvent{EventType: TypeTurnEnded, Time: time.Now(), Game: gameID},
		Tick:          tick,
		ProcessedTime: processedTime,
	}
}

// ActionRejectedEvent is published when the legality gate drops a
// requested action (spec.md §4.5, §7 AlgorithmMisbehavior).
type ActionRejectedEvent struct {
	BaseEvent
	Tick     int
	PlayerID int
	TankID   int
	Action   core.Action
	Reason   string
}

func NewActionRejectedEvent(gameID string, tick, playerID, tankID int, action core.Action, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: BaseEvent{EventType: TypeActionRejected, Time: time.Now(), Game: gameID},
		Tick:      tick,
		PlayerID:  playerID,
		TankID:    tankID,
		Action:    action,
		Reason:    reason,
	}
}

// ShellCollisionResolvedEvent is published for each collision resolved
// by a collision pass (spec.md §4.7): SubStep 0 is the pass right after
// action execution, 1 and 2 are the shell-advance sub-steps. Class names
// the collision kind, including the tank_mine and tank_tank classes.
type ShellCollisionResolvedEvent struct {
	BaseEvent
	Tick      int
	SubStep   int
	Class     string
	Pos       core.Point
	Destroyed []core.EntityID
}

func NewShellCollisionResolvedEvent(gameID string, tick, subStep int, class string, pos core.Point, destroyed []core.EntityID) *ShellCollisionResolvedEvent {
	return &ShellCollisionResolvedEvent{
		BaseEvent: BaseEvent{EventType: TypeShellCollisionResolved, Time: time.Now(), Game: gameID},
		Tick:      tick,
		SubStep:   subStep,
		Class:     class,
		Pos:       pos,
		Destroyed: destroyed,
	}
}

// TankDestroyedEvent is published whenever MarkDestroyed fires.
type TankDestroyedEvent struct {
	BaseEvent
	Tick     int
	PlayerID int
	TankID   int
	Cause    string
}

func NewTankDestroyedEvent(gameID string, tick, playerID, tankID int, cause string) *TankDestroyedEvent {
	return &TankDestroyedEvent{
		BaseEvent: BaseEvent{EventType: TypeTankDestroyed, Time: time.Now(), Game: gameID},
		Tick:      tick,
		PlayerID:  playerID,
		TankID:    tankID,
		Cause:     cause,
	}
}

// GameEndedEvent is published once the end-of-game arbiter reports Over.
type GameEndedEvent struct {
	BaseEvent
	Winner         int
	Reason         rules.Reason
	RemainingTanks [2]int
	Rounds         int
	Duration       time.Duration
}

func NewGameEndedEvent(gameID string, winner int, reason rules.Reason, remaining [2]int, rounds int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:      BaseEvent{EventType: TypeGameEnded, Time: time.Now(), Game: gameID},
		Winner:         winner,
		Reason:         reason,
		RemainingTanks: remaining,
		Rounds:         rounds,
		Duration:       duration,
	}
}
