package challenge

import (
	"context"
	"errors"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/manifold.space/internal/services/registry/storage"
	registrysqlite "github.com/louisbranch/manifold.space/internal/services/registry/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("challenge", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != filepath.Join("data", "registry.db") {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Nodes != 20 {
		t.Fatalf("expected default node count 20, got %d", cfg.Nodes)
	}
	if cfg.Dimensions != 2 {
		t.Fatalf("expected default dimension count 2, got %d", cfg.Dimensions)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("challenge", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/reg.db", "-date", "2026-08-27", "-nodes", "12"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/reg.db" {
		t.Fatalf("expected db override, got %q", cfg.DBPath)
	}
	if cfg.Date != "2026-08-27" {
		t.Fatalf("expected date override, got %q", cfg.Date)
	}
	if cfg.Nodes != 12 {
		t.Fatalf("expected 12 nodes, got %d", cfg.Nodes)
	}
}

func TestResolveDate(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	}

	date, err := resolveDate("", now)
	if err != nil {
		t.Fatalf("resolve empty date: %v", err)
	}
	if date.Format("2006-01-02") != "2026-08-27" {
		t.Fatalf("expected today, got %v", date)
	}

	date, err = resolveDate("2026-01-02", now)
	if err != nil {
		t.Fatalf("resolve explicit date: %v", err)
	}
	if date.Format("2006-01-02") != "2026-01-02" {
		t.Fatalf("expected explicit date, got %v", date)
	}

	if _, err := resolveDate("tomorrow", now); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestRunRegistersCalendarChallenges(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "registry.db")
	cfg := Config{
		DBPath:     dbPath,
		Date:       "2026-08-27",
		Nodes:      12,
		Dimensions: 1,
		Difficulty: 0.5,
	}
	now := func() time.Time {
		return time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	}

	if err := run(context.Background(), cfg, now); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := registrysqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	page, err := store.ListLevelRecords(context.Background(), 50, "")
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	// Four player counts each for daily and weekly, but co-op variants of the
	// same label share a fingerprint, so one record per label survives.
	if len(page.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Records))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "registry.db")
	cfg := Config{
		DBPath:     dbPath,
		Date:       "2026-08-27",
		Nodes:      12,
		Dimensions: 1,
		Difficulty: 0.5,
	}
	now := time.Now

	if err := run(context.Background(), cfg, now); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := run(context.Background(), cfg, now); err != nil {
		t.Fatalf("second run: %v", err)
	}

	store, err := registrysqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	if _, err := store.GetLevelRecord(context.Background(), "lvl-missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
