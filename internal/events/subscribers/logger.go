// Package subscribers holds event-bus subscribers that observe match
// events for logging; none of them may influence engine outcomes.
package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/yaelsagi2/tanks-game3/internal/events"
)

// LoggerSubscriber logs every match event through zerolog, grounded on
// the teacher's events/subscribers/logger.go.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter restricts logging to the given event types; nil or
// empty logs everything.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}
	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		ls.eventTypeFilter[t] = true
	}
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.TurnStartedEvent:
		logEvent.Int("tick", e.Tick)
	case *events.TurnEndedEvent:
		logEvent.Int("tick", e.Tick).Dur("processed", e.ProcessedTime)
	case *events.ActionRejectedEvent:
		logEvent.Int("tick", e.Tick).Int("player_id", e.PlayerID).Int("tank_id", e.TankID).
			Str("action", e.Action.String()).Str("reason", e.Reason)
	case *events.ShellCollisionResolvedEvent:
		logEvent.Int("tick", e.Tick).Int("sub_step", e.SubStep).Str("class", e.Class).
			Int("pos_x", e.Pos.X).Int("pos_y", e.Pos.Y).Int("destroyed_count", len(e.Destroyed))
	case *events.TankDestroyedEvent:
		logEvent.Int("tick", e.Tick).Int("player_id", e.PlayerID).Int("tank_id", e.TankID).Str("cause", e.Cause)
	case *events.StateTransitionEvent:
		logEvent.Str("from_phase", e.FromPhase).Str("to_phase", e.ToPhase).Str("reason", e.Reason)
	case *events.GameEndedEvent:
		logEvent.Int("winner", e.Winner).Str("reason", e.Reason.String()).
			Int("remaining_p1", e.RemainingTanks[0]).Int("remaining_p2", e.RemainingTanks[1]).
			Int("rounds", e.Rounds).Dur("duration", e.Duration)
	}

	logEvent.Msg("match event")
}
