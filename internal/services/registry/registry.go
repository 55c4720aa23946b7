// Package registry catalogs generated levels so they can be shared and
// replayed by fingerprint or short code.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/manifold.space/internal/levelgen"
	"github.com/louisbranch/manifold.space/internal/services/registry/storage"
)

const (
	defaultListLevelsPageSize = 10
	maxListLevelsPageSize     = 50
)

// Service exposes registry operations backed by level record storage.
type Service struct {
	store storage.LevelStore
	clock func() time.Time
}

// NewService creates a registry service backed by level record storage.
func NewService(store storage.LevelStore) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// Register persists the fingerprint of a generated level. Registering the
// same level twice is not an error; the existing record wins.
func (s *Service) Register(ctx context.Context, level *levelgen.Level) (storage.LevelRecord, error) {
	if s == nil || s.store == nil {
		return storage.LevelRecord{}, errors.New("level store is not configured")
	}
	if level == nil {
		return storage.LevelRecord{}, errors.New("level is required")
	}
	if strings.TrimSpace(level.Fingerprint.ID) == "" {
		return storage.LevelRecord{}, errors.New("level fingerprint id is required")
	}

	record := storage.LevelRecord{
		ID:        level.Fingerprint.ID,
		ShortCode: level.Fingerprint.ShortCode,
		Seed:      level.Seed,
		Rating:    level.Fingerprint.Rating,
		Tier:      string(level.Fingerprint.Tier),
		CreatedAt: s.clock().UTC(),
	}
	err := s.store.PutLevelRecord(ctx, record)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return s.store.GetLevelRecord(ctx, record.ID)
	}
	if err != nil {
		return storage.LevelRecord{}, fmt.Errorf("put level record: %w", err)
	}
	return record, nil
}

// Lookup returns the record for a fingerprint id.
func (s *Service) Lookup(ctx context.Context, id string) (storage.LevelRecord, error) {
	if s == nil || s.store == nil {
		return storage.LevelRecord{}, errors.New("level store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.LevelRecord{}, errors.New("level id is required")
	}
	return s.store.GetLevelRecord(ctx, id)
}

// LookupByShortCode returns the record matching a shareable short code.
// Codes are matched case-insensitively since players type them by hand.
func (s *Service) LookupByShortCode(ctx context.Context, code string) (storage.LevelRecord, error) {
	if s == nil || s.store == nil {
		return storage.LevelRecord{}, errors.New("level store is not configured")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return storage.LevelRecord{}, errors.New("short code is required")
	}
	return s.store.GetLevelRecordByShortCode(ctx, code)
}

// List returns one page of registered levels ordered by fingerprint id.
func (s *Service) List(ctx context.Context, pageSize int, pageToken string) (storage.LevelRecordPage, error) {
	if s == nil || s.store == nil {
		return storage.LevelRecordPage{}, errors.New("level store is not configured")
	}
	if pageSize <= 0 {
		pageSize = defaultListLevelsPageSize
	}
	if pageSize > maxListLevelsPageSize {
		pageSize = maxListLevelsPageSize
	}
	return s.store.ListLevelRecords(ctx, pageSize, pageToken)
}

// RecordAttempt counts one play attempt against a registered level.
func (s *Service) RecordAttempt(ctx context.Context, id string, completed bool) error {
	if s == nil || s.store == nil {
		return errors.New("level store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("level id is required")
	}
	return s.store.RecordAttempt(ctx, id, completed)
}
