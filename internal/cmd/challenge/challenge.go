// Package challenge parses challenge command flags and pre-generates the
// daily and weekly levels into the registry.
package challenge

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	challengeset "github.com/louisbranch/manifold.space/internal/challenge"
	"github.com/louisbranch/manifold.space/internal/levelgen"
	entrypoint "github.com/louisbranch/manifold.space/internal/platform/cmd"
	"github.com/louisbranch/manifold.space/internal/services/registry"
	registrysqlite "github.com/louisbranch/manifold.space/internal/services/registry/storage/sqlite"
)

// Config holds challenge command configuration.
type Config struct {
	DBPath     string  `env:"MANIFOLD_SPACE_CHALLENGE_DB_PATH"`
	Date       string  `env:"MANIFOLD_SPACE_CHALLENGE_DATE"`
	Nodes      int     `env:"MANIFOLD_SPACE_CHALLENGE_NODES" envDefault:"20"`
	Dimensions int     `env:"MANIFOLD_SPACE_CHALLENGE_DIMENSIONS" envDefault:"2"`
	Difficulty float64 `env:"MANIFOLD_SPACE_CHALLENGE_DIFFICULTY" envDefault:"0.5"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The registry database path")
	fs.StringVar(&cfg.Date, "date", cfg.Date, "The challenge date as YYYY-MM-DD (defaults to today)")
	fs.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "The base node count")
	fs.IntVar(&cfg.Dimensions, "dimensions", cfg.Dimensions, "The base dimension layer count")
	fs.Float64Var(&cfg.Difficulty, "difficulty", cfg.Difficulty, "The difficulty scale in [0, 1]")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "registry.db")
	}
	return cfg, nil
}

// Run pre-generates the challenge sets for the configured date.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceChallenge, func(ctx context.Context) error {
		return run(ctx, cfg, time.Now)
	})
}

func run(ctx context.Context, cfg Config, now func() time.Time) error {
	date, err := resolveDate(cfg.Date, now)
	if err != nil {
		return err
	}

	store, err := openRegistryStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close registry store: %v", err)
		}
	}()

	pregen := challengeset.NewPregenerator(levelgen.NewGenerator(), registry.NewService(store))
	challenges, err := pregen.PregenerateCalendar(ctx, date, generatorConfig(cfg), defaultModifiers())
	if err != nil {
		return err
	}
	for _, c := range challenges {
		log.Printf("registered %s players=%d id=%s code=%s rating=%d",
			c.Label, c.PlayerCount, c.Record.ID, c.Record.ShortCode, c.Record.Rating)
	}
	return nil
}

func resolveDate(value string, now func() time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now().UTC(), nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse challenge date %q: %w", value, err)
	}
	return date, nil
}

func openRegistryStore(path string) (*registrysqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := registrysqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry sqlite store: %w", err)
	}
	return store, nil
}

func generatorConfig(cfg Config) levelgen.Config {
	return levelgen.Config{
		BaseNodeCount:      cfg.Nodes,
		BaseDimensionCount: cfg.Dimensions,
		DifficultyScale:    cfg.Difficulty,
		PlayerCount:        1,
	}
}

// Challenge levels are shared by every player, so personalization modifiers
// stay at their neutral midpoint.
func defaultModifiers() levelgen.Modifiers {
	return levelgen.Modifiers{
		ComplexityTolerance: 0.5,
		ExplorationBias:     0.5,
		WitnessAffinity:     0.5,
		PerceptionDemand:    0.5,
		TimePressure:        0.5,
	}
}
