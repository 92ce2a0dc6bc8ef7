package lesson_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// startPostgres spins up a throwaway PostgreSQL container and returns a pool
// connected to it.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("lessonforge_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	store, err := lesson.NewPostgresStore(ctx, pool)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}

	doc := testDocument("Photosynthesis")
	doc.Slides = []lesson.Slide{{Number: 1, Title: "Intro", Content: []string{"a", "b"}, SpeakerNotes: "say hi"}}
	doc.VisualAids = []lesson.VisualAid{{Title: "Leaf diagram", Description: "cross-section"}}
	meta := lesson.GenerationRequest{Topic: "Photosynthesis", Subject: "Biology", Grade: "High School (Introductory)", Extended: true}

	t.Run("save and get", func(t *testing.T) {
		rec, err := store.Save(ctx, "user-1", doc, meta)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if rec.ID == "" || rec.CreatedAt.IsZero() {
			t.Errorf("record not fully populated: %+v", rec)
		}

		got, err := store.Get(ctx, "user-1", rec.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Document.Title != "Photosynthesis" {
			t.Errorf("title = %q", got.Document.Title)
		}
		if len(got.Document.Slides) != 1 || got.Document.Slides[0].SpeakerNotes != "say hi" {
			t.Errorf("slides = %+v", got.Document.Slides)
		}
		if got.Metadata.Grade != "High School (Introductory)" || !got.Metadata.Extended {
			t.Errorf("metadata = %+v", got.Metadata)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		first, err := store.Save(ctx, "user-2", testDocument("First"), meta)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		second, err := store.Save(ctx, "user-2", testDocument("Second"), meta)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		records, err := store.ListByOwner(ctx, "user-2")
		if err != nil {
			t.Fatalf("ListByOwner() error = %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("records = %d, want 2", len(records))
		}
		if records[0].ID != second.ID || records[1].ID != first.ID {
			t.Errorf("order = [%q, %q], want newest first", records[0].Document.Title, records[1].Document.Title)
		}
	})

	t.Run("owner isolation", func(t *testing.T) {
		rec, err := store.Save(ctx, "user-3", testDocument("Private"), meta)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if _, err := store.Get(ctx, "intruder", rec.ID); !errors.Is(err, lesson.ErrNotFound) {
			t.Errorf("Get() as other owner error = %v, want ErrNotFound", err)
		}
		if err := store.Delete(ctx, "intruder", rec.ID); !errors.Is(err, lesson.ErrNotFound) {
			t.Errorf("Delete() as other owner error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec, err := store.Save(ctx, "user-4", testDocument("Doomed"), meta)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if err := store.Delete(ctx, "user-4", rec.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := store.Get(ctx, "user-4", rec.ID); !errors.Is(err, lesson.ErrNotFound) {
			t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("base document keeps optional sections empty", func(t *testing.T) {
		rec, err := store.Save(ctx, "user-5", testDocument("Base"), lesson.GenerationRequest{Topic: "X", Subject: "Y"})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Get(ctx, "user-5", rec.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Document.Slides != nil || got.Document.VisualAids != nil || got.Document.Activities != nil {
			t.Errorf("optional sections should stay empty: %+v", got.Document)
		}
	})
}
