// Package tournament drives matches across a worker pool, grounded on
// the teacher's internal/grpc/gameserver concurrency shape: a manager
// owning shared state, dispatching work to goroutines that each guard
// themselves with a panic recover. There is no network surface here,
// only a bounded pool of local workers running independent matches
// (spec.md §5: "a match is a pure function... sharing no state").
package tournament

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yaelsagi2/tanks-game3/internal/algorithm"
	"github.com/yaelsagi2/tanks-game3/internal/core"
	"github.com/yaelsagi2/tanks-game3/internal/engine"
	"github.com/yaelsagi2/tanks-game3/internal/events"
	"github.com/yaelsagi2/tanks-game3/internal/events/subscribers"
	"github.com/yaelsagi2/tanks-game3/internal/mapfile"
	"github.com/yaelsagi2/tanks-game3/internal/rules"
	"github.com/yaelsagi2/tanks-game3/internal/states"
)

// Config bundles everything a tournament run needs. Comparative mode
// uses MapPath/Algorithm1/Algorithm2/GameManagers; competition mode
// uses MapPaths/Algorithms. Fields unused by the selected mode are
// ignored (SPEC_FULL.md §4, "collaborator, full implementation").
type Config struct {
	Registry *algorithm.Registry

	MapPath     string
	Algorithm1  string
	Algorithm2  string
	GameManagers []string // comparative mode report labels

	MapPaths   []string
	Algorithms []string // competition mode: registered algorithm names

	ZeroShellCountdown int
	NumThreads         int
	Verbose            bool
	Logger             zerolog.Logger
}

func (c Config) workers() int {
	if c.NumThreads > 0 {
		return c.NumThreads
	}
	return 1
}

// MatchOutcome is one completed match's result plus its rendered final
// board snapshot, ready for comparative grouping or competition scoring.
type MatchOutcome struct {
	Label1, Label2 string
	Result         rules.Result
	Snapshot       []string
	Err            error
}

func loadMap(path string) (*mapfile.MapData, []mapfile.Warning, error) {
	f, err := openMapFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return mapfile.Parse(f)
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

// renderSnapshot renders the board's raw contents (no viewer-relative
// CharSelf substitution, unlike battleinfo.View) for the final-snapshot
// reporting spec.md §6 describes.
func renderSnapshot(b *core.Board) []string {
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
	out := make([]string, b.Rows)
	for r, row := range grid {
		out[r] = string(row)
	}
	return out
}

// runMatch plays one full match to completion: a fresh engine.Engine,
// one algorithm instance per spawned tank, stepped until Over. ctx is
// only consulted between ticks (spec.md §5).
func runMatch(ctx context.Context, m *mapfile.MapData, f1, f2 algorithm.Factory, gameID string, cfg Config) MatchOutcome {
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

	eventBus := events.NewEventBus()
	if cfg.Verbose {
		logSub := subscribers.NewLoggerSubscriber("match-log", cfg.Logger, zerolog.DebugLevel)
		eventBus.Subscribe(logSub)
	}
	gameCtx := states.NewGameContext(gameID, cfg.Logger)
	gameCtx.MapParsed = true
	gameCtx.HasFactory1, gameCtx.HasFactory2 = true, true
	gameCtx.TotalLiveTanks = len(algos)
	sm := states.NewStateMachine(gameCtx, eventBus)

	if err := sm.TransitionTo(states.PhaseStarting, "map and algorithms ready"); err != nil {
		return MatchOutcome{Err: fmt.Errorf("match %s: %w", gameID, err)}
	}
	if err := sm.TransitionTo(states.PhaseRunning, "first tick"); err != nil {
		return MatchOutcome{Err: fmt.Errorf("match %s: %w", gameID, err)}
	}

	eng := engine.NewEngine(engine.Config{
		Board:              board,
		MaxSteps:           m.MaxSteps,
		ZeroShellCountdown: cfg.ZeroShellCountdown,
		Algorithms:         algos,
		EventBus:           eventBus,
		GameID:             gameID,
		Logger:             cfg.Logger,
	})

	var result rules.Result
	for !eng.IsGameOver() {
		var err error
		result, err = eng.Step(ctx)
		if err != nil {
			gameCtx.Error = err
			_ = sm.TransitionTo(states.PhaseError, err.Error())
			return MatchOutcome{Err: fmt.Errorf("match %s: %w", gameID, err)}
		}
	}

	gameCtx.Winner = result.Winner
	gameCtx.Reason = result.Reason.String()
	_ = sm.TransitionTo(states.PhaseEnding, gameCtx.Reason)
	_ = sm.TransitionTo(states.PhaseEnded, "match complete")

	return MatchOutcome{Result: result, Snapshot: renderSnapshot(board)}
}

// runPool dispatches jobs across a bounded worker pool (unbuffered job
// channel + WaitGroup), each worker guarding itself with a panic
// recover so one misbehaving match can't take down the run — the same
// shape as the teacher's goroutine-per-call gRPC handlers, minus the
// network boundary.
func runPool(ctx context.Context, n int, jobs []func() MatchOutcome, logger zerolog.Logger) []MatchOutcome {
	results := make([]MatchOutcome, len(jobs))
	jobCh := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobCh {
			results[idx] = runJobSafely(jobs[idx], logger)
		}
	}

	wg.Add(n)
	for i := 0; i < n; i++ {
		go worker()
	}
	for i := range jobs {
		select {
		case jobCh <- i:
		case <-ctx.Done():
		}
	}
	close(jobCh)
	wg.Wait()
	return results
}

func runJobSafely(job func() MatchOutcome, logger zerolog.Logger) (out MatchOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("match worker panicked")
			out = MatchOutcome{Err: fmt.Errorf("match panicked: %v", r)}
		}
	}()
	return job()
}

// ComparativeReport groups identically-behaving game-manager runs of
// the same two algorithms on one map, largest group first. The grouping
// key is (winner, reason, final snapshot); the round count is not
// recorded in MatchOutcome and is not part of the key.
type ComparativeReport struct {
	Groups []ComparativeGroup
}

type ComparativeGroup struct {
	GameManagers []string
	Result       rules.Result
	Snapshot     []string
}

// RunComparative runs cfg.Algorithm1 against cfg.Algorithm2 on
// cfg.MapPath once per name in cfg.GameManagers, then groups the
// outcomes by identical result. In this single-engine reimplementation
// every "game manager" behaves identically, so the grouping logic is
// exercised even though it will typically collapse to one group — the
// mechanism the original multi-implementation tournament relies on to
// catch engine divergence bugs.
func RunComparative(ctx context.Context, cfg Config) (*ComparativeReport, error) {
	if len(cfg.GameManagers) == 0 {
		return nil, fmt.Errorf("tournament: comparative mode requires at least one game manager name")
	}
	f1, ok := cfg.Registry.Lookup(cfg.Algorithm1)
	if !ok {
		return nil, fmt.Errorf("tournament: unknown algorithm %q", cfg.Algorithm1)
	}
	f2, ok := cfg.Registry.Lookup(cfg.Algorithm2)
	if !ok {
		return nil, fmt.Errorf("tournament: unknown algorithm %q", cfg.Algorithm2)
	}
	m, warnings, err := loadMap(cfg.MapPath)
	if err != nil {
		return nil, fmt.Errorf("tournament: %w", err)
	}
	if len(warnings) > 0 {
		_ = mapfile.WriteWarnings("input_errors.txt", warnings)
	}

	jobs := make([]func() MatchOutcome, len(cfg.GameManagers))
	for i, name := range cfg.GameManagers {
		gmName := name
		jobs[i] = func() MatchOutcome {
			gameID := fmt.Sprintf("comparative-%s-%s", gmName, uuid.NewString())
			out := runMatch(ctx, m, f1, f2, gameID, cfg)
			out.Label1 = gmName
			return out
		}
	}
	outcomes := runPool(ctx, cfg.workers(), jobs, cfg.Logger)

	groups := make(map[string]*ComparativeGroup)
	var order []string
	for _, out := range outcomes {
		if out.Err != nil {
			cfg.Logger.Error().Err(out.Err).Str("game_manager", out.Label1).Msg("comparative match failed")
			continue
		}
		key := groupKey(out.Result, out.Snapshot)
		g, ok := groups[key]
		if !ok {
			g = &ComparativeGroup{Result: out.Result, Snapshot: out.Snapshot}
			groups[key] = g
			order = append(order, key)
		}
		g.GameManagers = append(g.GameManagers, out.Label1)
	}

	report := &ComparativeReport{}
	for _, key := range order {
		report.Groups = append(report.Groups, *groups[key])
	}
	sort.SliceStable(report.Groups, func(i, j int) bool {
		return len(report.Groups[i].GameManagers) > len(report.Groups[j].GameManagers)
	})
	return report, nil
}

func groupKey(r rules.Result, snapshot []string) string {
	return fmt.Sprintf("%d|%s|%s", r.Winner, r.Reason.String(), strings.Join(snapshot, "\n"))
}

// CompetitionReport standings after every map has been played with the
// pairing formula of PairAlgorithms.
type CompetitionReport struct {
	Standings []Standing
}

type Standing struct {
	Algorithm string
	Wins      int
	Losses    int
	Ties      int
}

// RunCompetition runs every map in cfg.MapPaths through PairAlgorithms
// for the registered cfg.Algorithms, accumulating win/loss/tie counts
// per algorithm across the whole run.
func RunCompetition(ctx context.Context, cfg Config) (*CompetitionReport, error) {
	if len(cfg.Algorithms) < 2 {
		return nil, fmt.Errorf("tournament: competition mode requires at least two algorithms")
	}
	factories := make([]algorithm.Factory, len(cfg.Algorithms))
	for i, name := range cfg.Algorithms {
		f, ok := cfg.Registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("tournament: unknown algorithm %q", name)
		}
		factories[i] = f
	}

	type job struct {
		mapIdx, i, j int
	}
	var allJobs []job
	for k := range cfg.MapPaths {
		for _, pair := range PairAlgorithms(len(cfg.Algorithms), k) {
			allJobs = append(allJobs, job{mapIdx: k, i: pair[0], j: pair[1]})
		}
	}

	jobFns := make([]func() MatchOutcome, len(allJobs))
	for idx, jb := range allJobs {
		jb := jb
		jobFns[idx] = func() MatchOutcome {
			m, warnings, err := loadMap(cfg.MapPaths[jb.mapIdx])
			if err != nil {
				return MatchOutcome{Err: err}
			}
			if len(warnings) > 0 {
				_ = mapfile.WriteWarnings("input_errors.txt", warnings)
			}
			gameID := fmt.Sprintf("competition-map%d-%dv%d-%s", jb.mapIdx, jb.i, jb.j, uuid.NewString())
			out := runMatch(ctx, m, factories[jb.i], factories[jb.j], gameID, cfg)
			out.Label1, out.Label2 = cfg.Algorithms[jb.i], cfg.Algorithms[jb.j]
			return out
		}
	}
	outcomes := runPool(ctx, cfg.workers(), jobFns, cfg.Logger)

	tally := make(map[string]*Standing)
	get := func(name string) *Standing {
		s, ok := tally[name]
		if !ok {
			s = &Standing{Algorithm: name}
			tally[name] = s
		}
		return s
	}
	for _, name := range cfg.Algorithms {
		get(name)
	}
	for _, out := range outcomes {
		if out.Err != nil {
			cfg.Logger.Error().Err(out.Err).Msg("competition match failed")
			continue
		}
		s1, s2 := get(out.Label1), get(out.Label2)
		switch out.Result.Winner {
		case 0:
			s1.Ties++
			s2.Ties++
		case 1:
			s1.Wins++
			s2.Losses++
		case 2:
			s2.Wins++
			s1.Losses++
		}
	}

	report := &CompetitionReport{}
	for _, name := range cfg.Algorithms {
		report.Standings = append(report.Standings, *tally[name])
	}
	sort.SliceStable(report.Standings, func(i, j int) bool {
		return report.Standings[i].Wins > report.Standings[j].Wins
	})
	return report, nil
}
