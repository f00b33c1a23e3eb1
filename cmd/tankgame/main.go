package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yaelsagi2/tanks-game3/internal/algorithm"
	"github.com/yaelsagi2/tanks-game3/internal/config"
	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/engine"
	"github.com/yaelsagi2/tanks-game3/internal/events"
	"github.com/yaelsagi2/tanks-game3/internal/mapfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	mapPath := flag.String("map", "", "Path to a map file")
	algo1 := flag.String("algo1", "hybrid", "Registered algorithm name for player 1")
	algo2 := flag.String("algo2", "hybrid", "Registered algorithm name for player 2")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	quiet := flag.Bool("quiet", false, "Suppress per-tick snapshot printing")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize config")
	}
	cfg := config.Get()
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel)

	if *mapPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tankgame -map <file> [-algo1 name] [-algo2 name]")
		os.Exit(1)
	}

	registry := algorithm.NewRegistry()
	registry.Register("hybrid", func(playerID, tankID int) algorithm.TankAlgorithm {
		return algorithm.NewHybridAlgorithm(playerID, tankID, cfg.Engine.Algorithm.InfoInterval, cfg.Engine.Algorithm.ThreatRadius)
	})

	f, err := os.Open(*mapPath)
	if err != nil {
		log.Fatal().Err(err).Str("map", *mapPath).Msg("failed to open map")
	}
	m, warnings, err := mapfile.Parse(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse map")
	}
	if len(warnings) > 0 {
		if err := mapfile.WriteWarnings("input_errors.txt", warnings); err != nil {
			log.Warn().Err(err).Msg("failed to write input_errors.txt")
		}
		log.Warn().Int("count", len(warnings)).Msg("map parsed with warnings, see input_errors.txt")
	}

	f1, ok := registry.Lookup(*algo1)
	if !ok {
		log.Fatal().Str("algorithm", *algo1).Msg("unknown algorithm")
	}
	f2, ok := registry.Lookup(*algo2)
	if !ok {
		log.Fatal().Str("algorithm", *algo2).Msg("unknown algorithm")
	}

	board := buildBoard(m)
	algos := make(map[core.EntityID]algorithm.TankAlgorithm)
	for pid := 0; pid < board.NumPlayers(); pid++ {
		for _, id := range board.TankIDs(pid) {
			ent, _ := board.Get(id)
			factory := f1
			if pid == 1 {
				factory = f2
			}
			algos[id] = factory(pid, ent.Tank.TankID)
		}
	}

	eng := engine.NewEngine(engine.Config{
		Board:              board,
		MaxSteps:           m.MaxSteps,
		ZeroShellCountdown: cfg.Engine.ZeroShellCountdown,
		Algorithms:         algos,
		EventBus:           events.NewEventBus(),
		GameID:             uuid.NewString(),
		Logger:             log.Logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for !eng.IsGameOver() {
		result, err := eng.Step(ctx)
		if err != nil {
			log.Fatal().Err(err).Int("tick", eng.Tick()).Msg("match aborted")
		}
		if !*quiet {
			fmt.Printf("tick %d:\n%s\n", eng.Tick(), renderBoard(board))
		}
		if result.Over {
			fmt.Printf("winner=%d reason=%s rounds=%d remaining=%v\n",
				result.Winner, result.Reason, eng.Tick(), result.RemainingTanks)
		}
	}
}

func buildBoard(m *mapfile.MapData) *core.Board {
	b := core.NewBoard(m.Rows, m.Cols)
	for _, w := range m.Walls() {
		b.SpawnWall(w)
	}
	for _, mn := range m.Mines() {
		b.SpawnMine(mn)
	}
	for _, ts := range m.Tanks() {
		dir := core.L
		if ts.PlayerID == 1 {
			dir = core.R
		}
		b.SpawnTank(ts.Pos, dir, ts.PlayerID, m.NumShells)
	}
	b.InitTanks(2)
	return b
}

func renderBoard(b *core.Board) string {
	grid := make([][]byte, b.Rows)
	for r := range grid {
		grid[r] = make([]byte, b.Cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}
	for _, id := range b.EachKind(core.KindWall) {
		e, _ := b.Get(id)
		grid[e.Pos.X][e.Pos.Y] = '#'
	}
	for _, id := range b.EachKind(core.KindMine) {
		e, _ := b.Get(id)
		grid[e.Pos.X][e.Pos.Y] = '@'
	}
	for _, id := range b.EachKind(core.KindTank) {
		e, _ := b.Get(id)
		if e.Tank.PlayerID == 0 {
			grid[e.Pos.X][e.Pos.Y] = '1'
		} else {
			grid[e.Pos.X][e.Pos.Y] = '2'
		}
	}
	for _, id := range b.EachKind(core.KindShell) {
		e, _ := b.Get(id)
		grid[e.Pos.X][e.Pos.Y] = '*'
	}
	var out []byte
	for _, row := range grid {
		out = append(out, row...)
		out = append(out, '\n')
	}
	return string(out)
}

func setupLogging(level string) {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}
