package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yaelsagi2/tanks-game3/internal/algorithm"
	"github.com/yaelsagi2/tanks-game3/internal/config"
	"github.com/yaelsagi2/tanks-game3/internal/tournament"
)

// defaultRegistry registers every in-process algorithm available to
// the CLI. Dynamic plugin loading is out of scope (spec.md §1); names
// here stand in for "algorithms_folder"/"game_managers_folder".
func defaultRegistry(cfg *config.Config) *algorithm.Registry {
	reg := algorithm.NewRegistry()
	reg.Register("hybrid", func(playerID, tankID int) algorithm.TankAlgorithm {
		return algorithm.NewHybridAlgorithm(playerID, tankID, cfg.Engine.Algorithm.InfoInterval, cfg.Engine.Algorithm.ThreatRadius)
	})
	return reg
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	comparative := flag.Bool("comparative", false, "Run comparative mode")
	competition := flag.Bool("competition", false, "Run competition mode")

	gameMap := flag.String("game_map", "", "Comparative mode: map file")
	algorithm1 := flag.String("algorithm1", "", "Comparative mode: first algorithm name")
	algorithm2 := flag.String("algorithm2", "", "Comparative mode: second algorithm name")
	gameManagers := flag.String("game_managers_folder", "", "Comparative mode: comma-separated game manager labels")

	gameMapsFolder := flag.String("game_maps_folder", "", "Competition mode: comma-separated map files")
	algorithmsFolder := flag.String("algorithms_folder", "", "Competition mode: comma-separated algorithm names")

	numThreads := flag.Int("num_threads", 0, "Worker pool size (0 = config default)")
	verbose := flag.Bool("verbose", false, "Verbose logging")
	flag.Parse()

	// Arguments after the mode flag may also be given as key=value
	// (game_map=<f>, num_threads=<n>, ...), as the usage text shows.
	for _, arg := range flag.Args() {
		key, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !ok {
			value = "true"
		}
		if err := flag.Set(key, value); err != nil {
			usageErr(fmt.Sprintf("unrecognized argument %q", arg))
		}
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize config")
	}
	cfg := config.Get()
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel)

	if *numThreads <= 0 {
		*numThreads = cfg.Tournament.NumThreads
	}
	if !*verbose {
		*verbose = cfg.Tournament.Verbose
	}

	registry := defaultRegistry(cfg)
	ctx := context.Background()

	switch {
	case *comparative:
		if *gameMap == "" || *algorithm1 == "" || *algorithm2 == "" || *gameManagers == "" {
			usageErr("comparative mode requires -game_map, -algorithm1, -algorithm2, -game_managers_folder")
		}
		tcfg := tournament.Config{
			Registry:           registry,
			MapPath:            *gameMap,
			Algorithm1:         *algorithm1,
			Algorithm2:         *algorithm2,
			GameManagers:       splitCSV(*gameManagers),
			ZeroShellCountdown: cfg.Engine.ZeroShellCountdown,
			NumThreads:         *numThreads,
			Verbose:            *verbose,
			Logger:             log.Logger,
		}
		report, err := tournament.RunComparative(ctx, tcfg)
		if err != nil {
			log.Error().Err(err).Msg("comparative run failed")
			os.Exit(1)
		}
		printComparative(report)

	case *competition:
		if *gameMapsFolder == "" || *algorithmsFolder == "" {
			usageErr("competition mode requires -game_maps_folder, -algorithms_folder")
		}
		tcfg := tournament.Config{
			Registry:           registry,
			MapPaths:           splitCSV(*gameMapsFolder),
			Algorithms:         splitCSV(*algorithmsFolder),
			ZeroShellCountdown: cfg.Engine.ZeroShellCountdown,
			NumThreads:         *numThreads,
			Verbose:            *verbose,
			Logger:             log.Logger,
		}
		report, err := tournament.RunCompetition(ctx, tcfg)
		if err != nil {
			log.Error().Err(err).Msg("competition run failed")
			os.Exit(1)
		}
		printCompetition(report)

	default:
		usageErr("one of -comparative or -competition is required")
	}
}

func usageErr(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
	fmt.Fprintln(os.Stderr, "usage: tournament -comparative game_map=<f> algorithm1=<name> algorithm2=<name> game_managers_folder=<names> [-num_threads=<n>] [-verbose]")
	fmt.Fprintln(os.Stderr, "       tournament -competition game_maps_folder=<files> algorithms_folder=<names> [-num_threads=<n>] [-verbose]")
	os.Exit(1)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printComparative(report *tournament.ComparativeReport) {
	for _, g := range report.Groups {
		fmt.Printf("group [%s]: winner=%d reason=%s remaining=%v\n",
			strings.Join(g.GameManagers, ","), g.Result.Winner, g.Result.Reason, g.Result.RemainingTanks)
		for _, row := range g.Snapshot {
			fmt.Println(row)
		}
	}
}

func printCompetition(report *tournament.CompetitionReport) {
	fmt.Println("algorithm\twins\tlosses\tties")
	for _, s := range report.Standings {
		fmt.Printf("%s\t%d\t%d\t%d\n", s.Algorithm, s.Wins, s.Losses, s.Ties)
	}
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
