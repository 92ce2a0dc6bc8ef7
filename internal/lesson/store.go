package lesson

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist or belongs to
// another owner.
var ErrNotFound = errors.New("lesson record not found")

// Store persists generated lesson plans per owner. Records are immutable
// after creation; only the owner may list, read, or delete them.
type Store interface {
	Save(ctx context.Context, ownerID string, doc Document, meta GenerationRequest) (StoredRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]StoredRecord, error)
	Get(ctx context.Context, ownerID, id string) (StoredRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// MemoryStore is an in-memory Store implementation for development and tests.
type MemoryStore struct {
	records map[string]StoredRecord
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory lesson store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]StoredRecord),
	}
}

func (s *MemoryStore) Save(_ context.Context, ownerID string, doc Document, meta GenerationRequest) (StoredRecord, error) {
	if ownerID == "" {
		return StoredRecord{}, errors.New("owner_id is required")
	}

	rec := StoredRecord{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Document:  doc,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()

	return rec, nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID string) ([]StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := []StoredRecord{}
	for _, rec := range s.records {
		if rec.OwnerID == ownerID {
			records = append(records, rec)
		}
	}
	// Newest first; equal timestamps fall back to the ID so the order is
	// stable across calls.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (s *MemoryStore) Get(_ context.Context, ownerID, id string) (StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.OwnerID != ownerID {
		return StoredRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.records, rec.ID)
	return nil
}
