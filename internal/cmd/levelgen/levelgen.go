// Package levelgen parses level generator command flags and prints one
// generated level as JSON.
package levelgen

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/manifold.space/internal/levelgen"
	entrypoint "github.com/louisbranch/manifold.space/internal/platform/cmd"
	"github.com/louisbranch/manifold.space/internal/random"
)

// Config holds level generator command configuration.
type Config struct {
	Seed        int64   `env:"MANIFOLD_SPACE_LEVELGEN_SEED"`
	RandomSeed  bool    `env:"MANIFOLD_SPACE_LEVELGEN_RANDOM_SEED"`
	Nodes       int     `env:"MANIFOLD_SPACE_LEVELGEN_NODES" envDefault:"15"`
	Dimensions  int     `env:"MANIFOLD_SPACE_LEVELGEN_DIMENSIONS" envDefault:"1"`
	Difficulty  float64 `env:"MANIFOLD_SPACE_LEVELGEN_DIFFICULTY" envDefault:"0.5"`
	Players     int     `env:"MANIFOLD_SPACE_LEVELGEN_PLAYERS" envDefault:"1"`
	Progression int     `env:"MANIFOLD_SPACE_LEVELGEN_PROGRESSION"`

	ComplexityTolerance float64 `env:"MANIFOLD_SPACE_LEVELGEN_COMPLEXITY_TOLERANCE" envDefault:"0.5"`
	ExplorationBias     float64 `env:"MANIFOLD_SPACE_LEVELGEN_EXPLORATION_BIAS" envDefault:"0.5"`
	WitnessAffinity     float64 `env:"MANIFOLD_SPACE_LEVELGEN_WITNESS_AFFINITY" envDefault:"0.5"`
	PerceptionDemand    float64 `env:"MANIFOLD_SPACE_LEVELGEN_PERCEPTION_DEMAND" envDefault:"0.5"`
	TimePressure        float64 `env:"MANIFOLD_SPACE_LEVELGEN_TIME_PRESSURE" envDefault:"0.5"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "The generation seed")
	fs.BoolVar(&cfg.RandomSeed, "random-seed", cfg.RandomSeed, "Draw a random seed instead of -seed")
	fs.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "The base node count")
	fs.IntVar(&cfg.Dimensions, "dimensions", cfg.Dimensions, "The base dimension layer count")
	fs.Float64Var(&cfg.Difficulty, "difficulty", cfg.Difficulty, "The difficulty scale in [0, 1]")
	fs.IntVar(&cfg.Players, "players", cfg.Players, "The expected player count")
	fs.IntVar(&cfg.Progression, "progression", cfg.Progression, "The level progression counter")
	fs.Float64Var(&cfg.ComplexityTolerance, "complexity-tolerance", cfg.ComplexityTolerance, "Profile complexity tolerance in [0, 1]")
	fs.Float64Var(&cfg.ExplorationBias, "exploration-bias", cfg.ExplorationBias, "Profile exploration bias in [0, 1]")
	fs.Float64Var(&cfg.WitnessAffinity, "witness-affinity", cfg.WitnessAffinity, "Profile witness affinity in [0, 1]")
	fs.Float64Var(&cfg.PerceptionDemand, "perception-demand", cfg.PerceptionDemand, "Profile perception demand in [0, 1]")
	fs.Float64Var(&cfg.TimePressure, "time-pressure", cfg.TimePressure, "Profile time pressure in [0, 1]")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates one level and prints it to stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLevelgen, func(ctx context.Context) error {
		return run(ctx, cfg, os.Stdout)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	seed := int32(cfg.Seed)
	if cfg.RandomSeed {
		drawn, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("draw random seed: %w", err)
		}
		seed = drawn
	}

	generator := levelgen.NewGenerator()
	level := generator.Generate(seed, generatorConfig(cfg), generatorModifiers(cfg))
	if err := ctx.Err(); err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(level); err != nil {
		return fmt.Errorf("encode level: %w", err)
	}
	return nil
}

func generatorConfig(cfg Config) levelgen.Config {
	return levelgen.Config{
		BaseNodeCount:      cfg.Nodes,
		BaseDimensionCount: cfg.Dimensions,
		DifficultyScale:    cfg.Difficulty,
		PlayerCount:        cfg.Players,
		LevelProgression:   cfg.Progression,
	}
}

func generatorModifiers(cfg Config) levelgen.Modifiers {
	return levelgen.Modifiers{
		ComplexityTolerance: cfg.ComplexityTolerance,
		ExplorationBias:     cfg.ExplorationBias,
		WitnessAffinity:     cfg.WitnessAffinity,
		PerceptionDemand:    cfg.PerceptionDemand,
		TimePressure:        cfg.TimePressure,
	}
}
