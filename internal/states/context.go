package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext carries the information states need to validate
// themselves and log meaningfully, grounded on the teacher's
// states/context.go but re-validated against tank-match semantics.
type GameContext struct {
	GameID string
	Logger zerolog.Logger

	MapParsed       bool
	HasFactory1     bool
	HasFactory2     bool
	TotalLiveTanks  int

	StartTime          time.Time
	PauseTime          time.Time
	TotalPauseDuration time.Duration

	Winner int
	Reason string
	Error  error

	Metadata map[string]interface{}
}

func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
		Metadata: make(map[string]interface{}),
		Winner:   0,
	}
}

func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime) - gc.TotalPauseDuration
}

func (gc *GameContext) SetMetadata(key string, value interface{}) {
	gc.Metadata[key] = value
}

func (gc *GameContext) GetMetadata(key string) (interface{}, bool) {
	v, ok := gc.Metadata[key]
	return v, ok
}
