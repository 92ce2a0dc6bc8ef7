package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

const createTableSQL = `
CREATE TABLE IF NOT EXISTS lesson_plans (
	id                  UUID PRIMARY KEY,
	owner_id            TEXT NOT NULL,
	title               TEXT NOT NULL,
	learning_objectives JSONB NOT NULL DEFAULT '[]'::jsonb,
	timeline            JSONB NOT NULL DEFAULT '[]'::jsonb,
	visual_aids         JSONB,
	slides              JSONB,
	activities          JSONB,
	quiz                JSONB NOT NULL DEFAULT '[]'::jsonb,
	homework            JSONB NOT NULL DEFAULT '{}'::jsonb,
	metadata            JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_lesson_plans_owner_created
	ON lesson_plans (owner_id, created_at DESC);
`

// PostgresStore is a PostgreSQL-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed lesson store and ensures the
// schema exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("ensure lesson_plans table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, ownerID string, doc Document, meta GenerationRequest) (StoredRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if ownerID == "" {
		return StoredRecord{}, fmt.Errorf("owner_id is required")
	}

	cols, err := marshalDocument(doc)
	if err != nil {
		return StoredRecord{}, err
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return StoredRecord{}, fmt.Errorf("marshal metadata: %w", err)
	}

	rec := StoredRecord{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Document: doc,
		Metadata: meta,
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO lesson_plans
		 (id, owner_id, title, learning_objectives, timeline, visual_aids, slides, activities, quiz, homework, metadata)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		rec.ID,
		ownerID,
		doc.Title,
		cols.objectives,
		cols.timeline,
		cols.visualAids,
		cols.slides,
		cols.activities,
		cols.quiz,
		cols.homework,
		metaJSON,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return StoredRecord{}, fmt.Errorf("insert lesson plan: %w", err)
	}

	return rec, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]StoredRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, owner_id, title, learning_objectives, timeline, visual_aids, slides, activities, quiz, homework, metadata, created_at
		 FROM lesson_plans
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query lesson plans: %w", err)
	}
	defer rows.Close()

	records := []StoredRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson plans: %w", err)
	}

	return records, nil
}

func (s *PostgresStore) Get(ctx context.Context, ownerID, id string) (StoredRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, owner_id, title, learning_objectives, timeline, visual_aids, slides, activities, quiz, homework, metadata, created_at
		 FROM lesson_plans
		 WHERE id = $1::uuid AND owner_id = $2
		 LIMIT 1`,
		id,
		ownerID,
	)
	if err != nil {
		return StoredRecord{}, fmt.Errorf("query lesson plan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return StoredRecord{}, fmt.Errorf("query lesson plan: %w", err)
		}
		return StoredRecord{}, ErrNotFound
	}
	return scanRecord(rows)
}

func (s *PostgresStore) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	cmd, err := s.pool.Exec(ctx,
		`DELETE FROM lesson_plans WHERE id = $1::uuid AND owner_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete lesson plan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type documentColumns struct {
	objectives []byte
	timeline   []byte
	visualAids []byte
	slides     []byte
	activities []byte
	quiz       []byte
	homework   []byte
}

func marshalDocument(doc Document) (documentColumns, error) {
	var cols documentColumns
	var err error

	if cols.objectives, err = json.Marshal(doc.LearningObjectives); err != nil {
		return cols, fmt.Errorf("marshal learning_objectives: %w", err)
	}
	if cols.timeline, err = json.Marshal(doc.Timeline); err != nil {
		return cols, fmt.Errorf("marshal timeline: %w", err)
	}
	if cols.visualAids, err = marshalOptional(doc.VisualAids != nil, doc.VisualAids); err != nil {
		return cols, fmt.Errorf("marshal visual_aids: %w", err)
	}
	if cols.slides, err = marshalOptional(doc.Slides != nil, doc.Slides); err != nil {
		return cols, fmt.Errorf("marshal slides: %w", err)
	}
	if cols.activities, err = marshalOptional(doc.Activities != nil, doc.Activities); err != nil {
		return cols, fmt.Errorf("marshal activities: %w", err)
	}
	if cols.quiz, err = json.Marshal(doc.Quiz); err != nil {
		return cols, fmt.Errorf("marshal quiz: %w", err)
	}
	if cols.homework, err = json.Marshal(doc.Homework); err != nil {
		return cols, fmt.Errorf("marshal homework: %w", err)
	}

	return cols, nil
}

func marshalOptional(present bool, v any) ([]byte, error) {
	if !present {
		return nil, nil
	}
	return json.Marshal(v)
}

func scanRecord(rows pgx.Rows) (StoredRecord, error) {
	var rec StoredRecord
	var objectives, timeline, visualAids, slides, activities, quiz, homework, metadata []byte

	if err := rows.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Document.Title,
		&objectives,
		&timeline,
		&visualAids,
		&slides,
		&activities,
		&quiz,
		&homework,
		&metadata,
		&rec.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredRecord{}, ErrNotFound
		}
		return StoredRecord{}, fmt.Errorf("scan lesson plan: %w", err)
	}

	for _, col := range []struct {
		data []byte
		dst  any
	}{
		{objectives, &rec.Document.LearningObjectives},
		{timeline, &rec.Document.Timeline},
		{visualAids, &rec.Document.VisualAids},
		{slides, &rec.Document.Slides},
		{activities, &rec.Document.Activities},
		{quiz, &rec.Document.Quiz},
		{homework, &rec.Document.Homework},
		{metadata, &rec.Metadata},
	} {
		if len(col.data) == 0 {
			continue
		}
		if err := json.Unmarshal(col.data, col.dst); err != nil {
			return StoredRecord{}, fmt.Errorf("unmarshal lesson column: %w", err)
		}
	}

	return rec, nil
}
