package states

import (
	"fmt"
	"time"
)

// State is one lifecycle phase with Enter/Exit/Validate hooks.
type State interface {
	Phase() GamePhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	Validate(ctx *GameContext) error
}

type InitializingState struct{}

func NewInitializingState() State { return &InitializingState{} }
func (s *InitializingState) Phase() GamePhase { return PhaseInitializing }
func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("entering Initializing")
	return nil
}
func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("exiting Initializing")
	return nil
}
func (s *InitializingState) Validate(ctx *GameContext) error { return nil }

// StartingState requires a parsed map and both algorithm factories to
// be present before a match can run.
type StartingState struct{}

func NewStartingState() State { return &StartingState{} }
func (s *StartingState) Phase() GamePhase { return PhaseStarting }
func (s *StartingState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("starting match setup")
	return nil
}
func (s *StartingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("match setup complete")
	return nil
}
func (s *StartingState) Validate(ctx *GameContext) error {
	if !ctx.MapParsed {
		return fmt.Errorf("cannot start match: no map parsed")
	}
	if !ctx.HasFactory1 || !ctx.HasFactory2 {
		return fmt.Errorf("cannot start match: both tank algorithm factories are required")
	}
	return nil
}

// RunningState requires at least one live tank across both players.
type RunningState struct{}

func NewRunningState() State { return &RunningState{} }
func (s *RunningState) Phase() GamePhase { return PhaseRunning }
func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().Time("start_time", ctx.StartTime).Msg("match running")
	return nil
}
func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().Dur("elapsed", ctx.GetElapsedTime()).Msg("exiting Running")
	return nil
}
func (s *RunningState) Validate(ctx *GameContext) error {
	if ctx.TotalLiveTanks < 1 {
		return fmt.Errorf("cannot run match with no live tanks")
	}
	return nil
}

type PausedState struct{}

func NewPausedState() State { return &PausedState{} }
func (s *PausedState) Phase() GamePhase { return PhasePaused }
func (s *PausedState) Enter(ctx *GameContext) error {
	ctx.PauseTime = time.Now()
	ctx.Logger.Info().Msg("match paused")
	return nil
}
func (s *PausedState) Exit(ctx *GameContext) error {
	if !ctx.PauseTime.IsZero() {
		d := time.Since(ctx.PauseTime)
		ctx.TotalPauseDuration += d
		ctx.Logger.Info().Dur("pause_duration", d).Msg("match resumed")
	}
	return nil
}
func (s *PausedState) Validate(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		return fmt.Errorf("cannot pause a match that hasn't started")
	}
	return nil
}

type EndingState struct{}

func NewEndingState() State { return &EndingState{} }
func (s *EndingState) Phase() GamePhase { return PhaseEnding }
func (s *EndingState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("winner", ctx.Winner).Str("reason", ctx.Reason).Msg("match ending")
	return nil
}
func (s *EndingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("ending phase complete")
	return nil
}
func (s *EndingState) Validate(ctx *GameContext) error {
	if ctx.Reason == "" && ctx.Error == nil {
		return fmt.Errorf("ending state requires a reason or an error")
	}
	return nil
}

type EndedState struct{}

func NewEndedState() State { return &EndedState{} }
func (s *EndedState) Phase() GamePhase { return PhaseEnded }
func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("winner", ctx.Winner).Dur("duration", ctx.GetElapsedTime()).Msg("match ended")
	return nil
}
func (s *EndedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("exiting Ended")
	return nil
}
func (s *EndedState) Validate(ctx *GameContext) error { return nil }

type ErrorState struct{}

func NewErrorState() State { return &ErrorState{} }
func (s *ErrorState) Phase() GamePhase { return PhaseError }
func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().Err(ctx.Error).Msg("match entered error state")
	return nil
}
func (s *ErrorState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().Msg("recovering from error state")
	ctx.Error = nil
	return nil
}
func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}
