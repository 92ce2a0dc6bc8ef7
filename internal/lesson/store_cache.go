package lesson

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheTTL = 60 * time.Second

// CachedStore wraps a Store with a Redis cache for the dashboard listing.
// Cache misses and cache errors fall through to the inner store; writes
// invalidate the owner's cached list.
type CachedStore struct {
	inner  Store
	client *redis.Client
}

// NewCachedStore wraps store with a Redis-backed list cache.
func NewCachedStore(store Store, client *redis.Client) *CachedStore {
	return &CachedStore{inner: store, client: client}
}

func listKey(ownerID string) string {
	return "lessons:" + ownerID
}

func (s *CachedStore) Save(ctx context.Context, ownerID string, doc Document, meta GenerationRequest) (StoredRecord, error) {
	rec, err := s.inner.Save(ctx, ownerID, doc, meta)
	if err != nil {
		return rec, err
	}
	s.invalidate(ctx, ownerID)
	return rec, nil
}

func (s *CachedStore) ListByOwner(ctx context.Context, ownerID string) ([]StoredRecord, error) {
	key := listKey(ownerID)

	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var records []StoredRecord
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		// Stale or corrupt entry; drop it and fall through.
		s.invalidate(ctx, ownerID)
	}

	records, err := s.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := s.client.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
			slog.Warn("failed to cache lesson list", "owner_id", ownerID, "error", err)
		}
	}

	return records, nil
}

func (s *CachedStore) Get(ctx context.Context, ownerID, id string) (StoredRecord, error) {
	return s.inner.Get(ctx, ownerID, id)
}

func (s *CachedStore) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.inner.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, ownerID string) {
	if err := s.client.Del(ctx, listKey(ownerID)).Err(); err != nil {
		slog.Warn("failed to invalidate lesson list cache", "owner_id", ownerID, "error", err)
	}
}
