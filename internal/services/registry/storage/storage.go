// Package storage defines the persistence contracts for the level registry.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a record with the same id is already registered.
var ErrAlreadyExists = errors.New("record already exists")

// LevelRecord is one registered level fingerprint plus its play statistics.
// The generator core never mutates statistics; they accumulate here.
type LevelRecord struct {
	ID          string
	ShortCode   string
	Seed        int32
	Rating      int
	Tier        string
	Attempts    int
	Completions int
	CreatedAt   time.Time
}

// LevelRecordPage is one page of records plus the continuation token.
type LevelRecordPage struct {
	Records       []LevelRecord
	NextPageToken string
}

// LevelStore persists level fingerprint records.
type LevelStore interface {
	PutLevelRecord(ctx context.Context, record LevelRecord) error
	GetLevelRecord(ctx context.Context, id string) (LevelRecord, error)
	GetLevelRecordByShortCode(ctx context.Context, code string) (LevelRecord, error)
	ListLevelRecords(ctx context.Context, pageSize int, pageToken string) (LevelRecordPage, error)
	RecordAttempt(ctx context.Context, id string, completed bool) error
}
