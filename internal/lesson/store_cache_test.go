package lesson_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// unreachableRedis returns a client whose every command fails fast. The
// cached store must fall through to the inner store in that case.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedStore_FallsThroughOnCacheFailure(t *testing.T) {
	inner := lesson.NewMemoryStore()
	store := lesson.NewCachedStore(inner, unreachableRedis())
	ctx := context.Background()

	rec, err := store.Save(ctx, "user-1", testDocument("Cached"), lesson.GenerationRequest{Topic: "X", Subject: "Y"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := store.ListByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Errorf("records = %+v, want the saved record", records)
	}

	got, err := store.Get(ctx, "user-1", rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Document.Title != "Cached" {
		t.Errorf("title = %q", got.Document.Title)
	}

	if err := store.Delete(ctx, "user-1", rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	records, err = store.ListByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByOwner() after delete error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records after delete = %d, want 0", len(records))
	}
}
