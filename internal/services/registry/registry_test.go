package registry

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/louisbranch/manifold.space/internal/levelgen"
	"github.com/louisbranch/manifold.space/internal/services/registry/storage"
)

type fakeLevelStore struct {
	records map[string]storage.LevelRecord
	putErr  error
}

func newFakeLevelStore() *fakeLevelStore {
	return &fakeLevelStore{records: make(map[string]storage.LevelRecord)}
}

func (f *fakeLevelStore) PutLevelRecord(_ context.Context, record storage.LevelRecord) error {
	if f.putErr != nil {
		return f.putErr
	}
	if _, ok := f.records[record.ID]; ok {
		return storage.ErrAlreadyExists
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeLevelStore) GetLevelRecord(_ context.Context, id string) (storage.LevelRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return storage.LevelRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (f *fakeLevelStore) GetLevelRecordByShortCode(_ context.Context, code string) (storage.LevelRecord, error) {
	for _, record := range f.records {
		if record.ShortCode == code {
			return record, nil
		}
	}
	return storage.LevelRecord{}, storage.ErrNotFound
}

func (f *fakeLevelStore) ListLevelRecords(_ context.Context, pageSize int, pageToken string) (storage.LevelRecordPage, error) {
	ids := make([]string, 0, len(f.records))
	for id := range f.records {
		if id > pageToken {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	page := storage.LevelRecordPage{}
	for _, id := range ids {
		if len(page.Records) == pageSize {
			page.NextPageToken = page.Records[len(page.Records)-1].ID
			break
		}
		page.Records = append(page.Records, f.records[id])
	}
	return page, nil
}

func (f *fakeLevelStore) RecordAttempt(_ context.Context, id string, completed bool) error {
	record, ok := f.records[id]
	if !ok {
		return storage.ErrNotFound
	}
	record.Attempts++
	if completed {
		record.Completions++
	}
	f.records[id] = record
	return nil
}

func testLevel(id, code string) *levelgen.Level {
	return &levelgen.Level{
		Seed: 42,
		Fingerprint: levelgen.Fingerprint{
			ID:        id,
			ShortCode: code,
			Rating:    48,
			Tier:      levelgen.TierIntermediate,
		},
	}
}

func TestRegisterPersistsFingerprint(t *testing.T) {
	store := newFakeLevelStore()
	service := NewService(store)
	service.clock = func() time.Time {
		return time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	}

	record, err := service.Register(context.Background(), testLevel("lvl-abc", "ABCD-EFGH"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if record.ID != "lvl-abc" {
		t.Fatalf("expected id lvl-abc, got %q", record.ID)
	}
	if record.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", record.Seed)
	}
	if record.Tier != "intermediate" {
		t.Fatalf("expected intermediate tier, got %q", record.Tier)
	}
	if !record.CreatedAt.Equal(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected injected clock time, got %v", record.CreatedAt)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	store := newFakeLevelStore()
	service := NewService(store)

	level := testLevel("lvl-abc", "ABCD-EFGH")
	first, err := service.Register(context.Background(), level)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	second, err := service.Register(context.Background(), level)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same record, got %q and %q", first.ID, second.ID)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.records))
	}
}

func TestRegisterRequiresFingerprint(t *testing.T) {
	service := NewService(newFakeLevelStore())
	if _, err := service.Register(context.Background(), &levelgen.Level{}); err == nil {
		t.Fatal("expected error for missing fingerprint id")
	}
	if _, err := service.Register(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil level")
	}
}

func TestLookupByShortCodeNormalizesCase(t *testing.T) {
	store := newFakeLevelStore()
	service := NewService(store)
	if _, err := service.Register(context.Background(), testLevel("lvl-abc", "ABCD-EFGH")); err != nil {
		t.Fatalf("register: %v", err)
	}

	record, err := service.LookupByShortCode(context.Background(), " abcd-efgh ")
	if err != nil {
		t.Fatalf("lookup by short code: %v", err)
	}
	if record.ID != "lvl-abc" {
		t.Fatalf("expected lvl-abc, got %q", record.ID)
	}
}

func TestLookupMissingLevel(t *testing.T) {
	service := NewService(newFakeLevelStore())
	_, err := service.Lookup(context.Background(), "lvl-missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListClampsPageSize(t *testing.T) {
	store := newFakeLevelStore()
	service := NewService(store)
	for _, id := range []string{"lvl-a", "lvl-b", "lvl-c"} {
		if _, err := service.Register(context.Background(), testLevel(id, "CODE-"+id)); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	page, err := service.List(context.Background(), -5, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Records) != 3 {
		t.Fatalf("expected default page to hold all 3 records, got %d", len(page.Records))
	}

	page, err = service.List(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("list page size 1: %v", err)
	}
	if len(page.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(page.Records))
	}
	if page.NextPageToken == "" {
		t.Fatal("expected continuation token")
	}
}

func TestRecordAttempt(t *testing.T) {
	store := newFakeLevelStore()
	service := NewService(store)
	if _, err := service.Register(context.Background(), testLevel("lvl-abc", "ABCD-EFGH")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := service.RecordAttempt(context.Background(), "lvl-abc", true); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	record := store.records["lvl-abc"]
	if record.Attempts != 1 || record.Completions != 1 {
		t.Fatalf("expected 1 attempt and 1 completion, got %d/%d", record.Attempts, record.Completions)
	}

	if err := service.RecordAttempt(context.Background(), "", true); err == nil {
		t.Fatal("expected error for empty id")
	}
}
