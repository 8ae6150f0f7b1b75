package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/grid"
	"github.com/pdrpinto/astar/v2/internal/config"
	"github.com/pdrpinto/astar/v2/internal/observability"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "astar",
		Usage:    "A* pathfinding over randomly obstructed grids",
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Side length of the generated grid",
			},
			&cli.Float64Flag{
				Name:  "obstruction",
				Usage: "Probability that a grid cell is blocked",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Random seed for map and endpoint generation (0 picks one)",
			},
			&cli.BoolFlag{
				Name:  "validate-endpoints",
				Usage: "Fail instead of searching when an endpoint is blocked",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "Generate a map, pick two free cells and print the path between them",
				Action: demoCommand,
			},
			{
				Name:   "bench",
				Usage:  "Run many random searches concurrently and print metrics",
				Action: benchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "searches",
						Usage: "Number of random searches",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of searches run at once",
					},
				},
			},
			{
				Name:   "trace",
				Usage:  "Step through one search and log every expansion",
				Action: traceCommand,
			},
		},
	}
}

// setup loads configuration, applies global flag overrides and installs the logger.
// Only the log level is checked here; commands validate the whole configuration
// once their own flags are applied.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("size") {
		cfg.Size = c.Int("size")
	}
	if c.IsSet("obstruction") {
		cfg.ObstructionProbability = c.Float64("obstruction")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("validate-endpoints") {
		cfg.ValidateEndpoints = c.Bool("validate-endpoints")
	}
	if err := cfg.ValidateFields("LogLevel"); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger.With(zap.String("run_id", uuid.NewString())))

	c.App.Metadata[configKey] = cfg
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Encoding = "console"
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.OutputPaths = []string{"stderr"}
	return zapConfig.Build()
}

// commandConfig returns the configuration prepared by setup with the
// command's own flags applied, validated as a whole.
func commandConfig(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		cfg = config.Default()
	}
	if c.IsSet("searches") {
		cfg.Searches = c.Int("searches")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRand(cfg *config.Config) *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	zap.L().Info("generating map",
		zap.Uint64("seed", seed),
		zap.Int("size", cfg.Size),
		zap.Float64("obstruction", cfg.ObstructionProbability),
	)
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func searchOptions(cfg *config.Config) []astar.Option {
	options := []astar.Option{astar.WithLogger(zap.L())}
	if cfg.ValidateEndpoints {
		options = append(options, astar.WithEndpointValidation())
	}
	return options
}

func pickEndpoints(g *grid.Grid, rng *rand.Rand) (grid.Point, grid.Point, error) {
	origin, err := g.RandomPassable(rng)
	if err != nil {
		return grid.Point{}, grid.Point{}, err
	}
	destination, err := g.RandomPassable(rng)
	if err != nil {
		return grid.Point{}, grid.Point{}, err
	}
	return origin, destination, nil
}

func demoCommand(c *cli.Context) error {
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}
	rng := newRand(cfg)
	out := c.App.Writer

	g := grid.Generate(cfg.Size, cfg.ObstructionProbability, rng)
	fmt.Fprintln(out, "The map (. is a passable square, # is an impassable square):")
	fmt.Fprintln(out, g)

	origin, destination, err := pickEndpoints(g, rng)
	if err != nil {
		return err
	}

	result, err := astar.FindPath(c.Context, origin, destination, g, searchOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("find path: %w", err)
	}
	if !result.Found {
		fmt.Fprintf(out, "No path exists from %v to %v.\n", origin, destination)
		return nil
	}

	fmt.Fprintf(out, "The path from %v to %v (cost %.2f, %d nodes expanded) is: %v\n\n",
		origin, destination, result.TotalCost, result.ExpandedNodes, result.Path)
	fmt.Fprintln(out, "The map with the path plotted. 'x' marks the path from origin 'O' to destination 'D':")
	fmt.Fprintln(out, g.Render(origin, destination, result.Path))
	return nil
}

func benchCommand(c *cli.Context) error {
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}
	rng := newRand(cfg)

	g := grid.Generate(cfg.Size, cfg.ObstructionProbability, rng)
	queries := make([]astar.Query[grid.Point], 0, cfg.Searches)
	for i := 0; i < cfg.Searches; i++ {
		origin, destination, err := pickEndpoints(g, rng)
		if err != nil {
			return err
		}
		queries = append(queries, astar.Query[grid.Point]{Origin: origin, Destination: destination})
	}

	options := append(searchOptions(cfg), astar.WithWorkers(cfg.Workers))
	started := time.Now()
	results, err := astar.FindPaths(c.Context, g, queries, options...)
	if err != nil {
		return fmt.Errorf("run searches: %w", err)
	}
	elapsed := time.Since(started)

	collector := observability.NewCollector("astar")
	found := 0
	for _, batchResult := range results {
		outcome := observability.OutcomeUnreachable
		switch {
		case batchResult.Err != nil:
			outcome = observability.OutcomeError
			zap.L().Warn("search failed",
				zap.Any("origin", batchResult.Query.Origin),
				zap.Any("destination", batchResult.Query.Destination),
				zap.Error(batchResult.Err),
			)
		case batchResult.Result.Found:
			outcome = observability.OutcomeFound
			found++
		}
		collector.ObserveSearch(outcome, batchResult.Result.ExpandedNodes, len(batchResult.Result.Path), batchResult.Elapsed)
	}

	zap.L().Info("benchmark finished",
		zap.Int("searches", len(results)),
		zap.Int("found", found),
		zap.Int("workers", cfg.Workers),
		zap.Duration("elapsed", elapsed),
	)
	return collector.WriteText(c.App.Writer)
}

func traceCommand(c *cli.Context) error {
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}
	rng := newRand(cfg)

	g := grid.Generate(cfg.Size, cfg.ObstructionProbability, rng)
	origin, destination, err := pickEndpoints(g, rng)
	if err != nil {
		return err
	}

	stepper, err := astar.NewStepper(c.Context, origin, destination, g, searchOptions(cfg)...)
	if err != nil {
		return err
	}
	var snapshot astar.StepSnapshot[grid.Point]
	for !snapshot.Done {
		snapshot, err = stepper.Step()
		if err != nil {
			return fmt.Errorf("step %d: %w", snapshot.StepIndex, err)
		}
		zap.L().Debug("step",
			zap.Int("index", snapshot.StepIndex),
			zap.Any("current", snapshot.Current),
			zap.Int("open", len(snapshot.Open)),
			zap.Int("closed", len(snapshot.Closed)),
		)
	}

	out := c.App.Writer
	if !snapshot.Found {
		fmt.Fprintf(out, "No path exists from %v to %v after %d steps.\n", origin, destination, snapshot.StepIndex)
		return nil
	}
	fmt.Fprintf(out, "Found a path of cost %.2f in %d steps:\n", snapshot.TotalCost, snapshot.StepIndex)
	fmt.Fprintln(out, g.Render(origin, destination, snapshot.Path))
	return nil
}
