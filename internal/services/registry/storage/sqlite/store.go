// Package sqlite provides a SQLite-backed level registry store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/manifold.space/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/manifold.space/internal/services/registry/storage"
	"github.com/louisbranch/manifold.space/internal/services/registry/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists level records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite registry store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutLevelRecord inserts one level record.
func (s *Store) PutLevelRecord(ctx context.Context, record storage.LevelRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return fmt.Errorf("level id is required")
	}
	shortCode := strings.TrimSpace(record.ShortCode)
	if shortCode == "" {
		return fmt.Errorf("short code is required")
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO level_records (
		   id, short_code, seed, rating, tier, attempts, completions, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		shortCode,
		record.Seed,
		record.Rating,
		record.Tier,
		record.Attempts,
		record.Completions,
		toMillis(createdAt),
	)
	if err != nil {
		if isLevelRecordUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put level record: %w", err)
	}
	return nil
}

// GetLevelRecord returns one record by fingerprint id.
func (s *Store) GetLevelRecord(ctx context.Context, id string) (storage.LevelRecord, error) {
	return s.getLevelRecord(ctx, "id = ?", strings.TrimSpace(id))
}

// GetLevelRecordByShortCode returns one record by shareable short code.
func (s *Store) GetLevelRecordByShortCode(ctx context.Context, code string) (storage.LevelRecord, error) {
	return s.getLevelRecord(ctx, "short_code = ?", strings.TrimSpace(code))
}

func (s *Store) getLevelRecord(ctx context.Context, where, key string) (storage.LevelRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.LevelRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.LevelRecord{}, fmt.Errorf("storage is not configured")
	}
	if key == "" {
		return storage.LevelRecord{}, fmt.Errorf("lookup key is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, short_code, seed, rating, tier, attempts, completions, created_at
		   FROM level_records
		  WHERE `+where,
		key,
	)

	var record storage.LevelRecord
	var createdAt int64
	err := row.Scan(
		&record.ID,
		&record.ShortCode,
		&record.Seed,
		&record.Rating,
		&record.Tier,
		&record.Attempts,
		&record.Completions,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.LevelRecord{}, storage.ErrNotFound
		}
		return storage.LevelRecord{}, fmt.Errorf("get level record: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

// ListLevelRecords returns one page of records ordered by fingerprint id.
func (s *Store) ListLevelRecords(ctx context.Context, pageSize int, pageToken string) (storage.LevelRecordPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.LevelRecordPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.LevelRecordPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.LevelRecordPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	page := storage.LevelRecordPage{
		Records: make([]storage.LevelRecord, 0, pageSize),
	}

	var (
		rows *sql.Rows
		err  error
	)
	if pageToken == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, short_code, seed, rating, tier, attempts, completions, created_at
			   FROM level_records
			  ORDER BY id ASC
			  LIMIT ?`,
			pageSize+1,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, short_code, seed, rating, tier, attempts, completions, created_at
			   FROM level_records
			  WHERE id > ?
			  ORDER BY id ASC
			  LIMIT ?`,
			pageToken,
			pageSize+1,
		)
	}
	if err != nil {
		return storage.LevelRecordPage{}, fmt.Errorf("list level records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record storage.LevelRecord
		var createdAt int64
		if err := rows.Scan(
			&record.ID,
			&record.ShortCode,
			&record.Seed,
			&record.Rating,
			&record.Tier,
			&record.Attempts,
			&record.Completions,
			&createdAt,
		); err != nil {
			return storage.LevelRecordPage{}, fmt.Errorf("list level records: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return storage.LevelRecordPage{}, fmt.Errorf("list level records: %w", err)
	}
	if len(page.Records) > pageSize {
		page.NextPageToken = page.Records[pageSize-1].ID
		page.Records = page.Records[:pageSize]
	}

	return page, nil
}

// RecordAttempt increments the play statistics for one level.
func (s *Store) RecordAttempt(ctx context.Context, id string, completed bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("level id is required")
	}

	completedDelta := 0
	if completed {
		completedDelta = 1
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE level_records
		    SET attempts = attempts + 1,
		        completions = completions + ?
		  WHERE id = ?`,
		completedDelta,
		id,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func isLevelRecordUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "level_records.id")
}

var _ storage.LevelStore = (*Store)(nil)
