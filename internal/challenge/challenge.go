// Package challenge pre-generates the shared daily and weekly levels that
// every player receives. Seeds derive from the calendar label, so any two
// backends that agree on the date produce byte-identical levels.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/manifold.space/internal/levelgen"
	"github.com/louisbranch/manifold.space/internal/services/registry"
	"github.com/louisbranch/manifold.space/internal/services/registry/storage"
)

// Player counts a pre-generated set covers. Solo always ships; the
// cooperative variants reuse the same seed so the shared geometry matches.
var defaultPlayerCounts = []int{1, 2, 3, 4}

// Challenge is one pre-generated level bound to a calendar label.
type Challenge struct {
	Label       string
	PlayerCount int
	Seed        int32
	Level       *levelgen.Level
	Record      storage.LevelRecord
}

// Pregenerator builds and registers challenge sets ahead of their window.
type Pregenerator struct {
	generator    *levelgen.Generator
	registry     *registry.Service
	playerCounts []int
}

// NewPregenerator creates a pregenerator that registers levels with the
// provided registry service.
func NewPregenerator(generator *levelgen.Generator, svc *registry.Service) *Pregenerator {
	return &Pregenerator{
		generator:    generator,
		registry:     svc,
		playerCounts: defaultPlayerCounts,
	}
}

// DailyLabel returns the label for the daily challenge covering t.
func DailyLabel(t time.Time) string {
	return t.UTC().Format("daily-2006-01-02")
}

// WeeklyLabel returns the label for the ISO week challenge covering t.
func WeeklyLabel(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("weekly-%d-W%02d", year, week)
}

// SeedFromLabel derives the deterministic seed for a challenge label.
// Labels are case-insensitive so hand-typed lookups still resolve.
func SeedFromLabel(label string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(label))))
	return int32(h.Sum32())
}

// Pregenerate builds one level per player count for the label and registers
// each fingerprint. Generation runs concurrently; each level draws from its
// own stream, so ordering between player counts cannot affect output.
func (p *Pregenerator) Pregenerate(ctx context.Context, label string, cfg levelgen.Config, mods levelgen.Modifiers) ([]Challenge, error) {
	if p == nil || p.generator == nil {
		return nil, errors.New("generator is not configured")
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("challenge label is required")
	}

	seed := SeedFromLabel(label)
	counts := p.playerCounts
	if len(counts) == 0 {
		counts = defaultPlayerCounts
	}

	challenges := make([]Challenge, len(counts))
	var wg sync.WaitGroup
	for i, players := range counts {
		wg.Add(1)
		go func(i, players int) {
			defer wg.Done()
			variant := cfg
			variant.PlayerCount = players
			level := p.generator.Generate(seed, variant, mods)
			challenges[i] = Challenge{
				Label:       label,
				PlayerCount: players,
				Seed:        seed,
				Level:       level,
			}
		}(i, players)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range challenges {
		level := challenges[i].Level
		for _, diag := range level.Diagnostics {
			log.Printf("challenge %s (players=%d): %s", label, challenges[i].PlayerCount, diag)
		}
		if p.registry == nil {
			continue
		}
		record, err := p.registry.Register(ctx, level)
		if err != nil {
			return nil, fmt.Errorf("register challenge %s (players=%d): %w", label, challenges[i].PlayerCount, err)
		}
		challenges[i].Record = record
	}
	return challenges, nil
}

// PregenerateCalendar builds the daily and weekly sets covering t.
func (p *Pregenerator) PregenerateCalendar(ctx context.Context, t time.Time, cfg levelgen.Config, mods levelgen.Modifiers) ([]Challenge, error) {
	daily, err := p.Pregenerate(ctx, DailyLabel(t), cfg, mods)
	if err != nil {
		return nil, err
	}
	weekly, err := p.Pregenerate(ctx, WeeklyLabel(t), cfg, mods)
	if err != nil {
		return nil, err
	}
	return append(daily, weekly...), nil
}
