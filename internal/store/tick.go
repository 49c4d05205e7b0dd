package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/behavenet/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TickSchema creates the table PGTickStore writes to.
const TickSchema = `
CREATE TABLE IF NOT EXISTS ticks (
	id          UUID PRIMARY KEY,
	run_id      UUID NOT NULL,
	network     TEXT NOT NULL,
	tick        BIGINT NOT NULL,
	attempts    INT NOT NULL,
	threshold   DOUBLE PRECISION NOT NULL,
	executed    TEXT[] NOT NULL DEFAULT '{}',
	failures    JSONB NOT NULL DEFAULT '{}',
	activations JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (run_id, tick)
);
CREATE INDEX IF NOT EXISTS ticks_run_created_idx ON ticks (run_id, created_at DESC);
`

type PGTickStore struct {
	db *pgxpool.Pool
}

func NewPGTickStore(db *pgxpool.Pool) *PGTickStore {
	return &PGTickStore{db: db}
}

// EnsureSchema creates the ticks table if it does not exist.
func (s *PGTickStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, TickSchema); err != nil {
		return fmt.Errorf("create ticks schema: %w", err)
	}
	return nil
}

func (s *PGTickStore) Create(ctx context.Context, r *domain.TickRecord) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Executed == nil {
		r.Executed = []string{}
	}

	failuresJSON, err := json.Marshal(r.Failures)
	if err != nil {
		return fmt.Errorf("marshal failures: %w", err)
	}
	activationsJSON, err := json.Marshal(r.Activations)
	if err != nil {
		return fmt.Errorf("marshal activations: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO ticks (id, run_id, network, tick, attempts, threshold, executed, failures, activations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		r.ID, r.RunID, r.Network, r.Tick, r.Attempts, r.Threshold, r.Executed, failuresJSON, activationsJSON,
	).Scan(&r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *PGTickStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TickRecord, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, run_id, network, tick, attempts, threshold, executed, failures, activations, created_at
		 FROM ticks WHERE id = $1`,
		id,
	)
	r, err := scanTick(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *PGTickStore) ListRecent(ctx context.Context, runID uuid.UUID, limit int) ([]domain.TickRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, run_id, network, tick, attempts, threshold, executed, failures, activations, created_at
		 FROM ticks WHERE run_id = $1
		 ORDER BY tick DESC
		 LIMIT $2`,
		runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list ticks query: %w", err)
	}
	defer rows.Close()

	var records []domain.TickRecord
	for rows.Next() {
		r, err := scanTick(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func scanTick(row pgx.Row) (*domain.TickRecord, error) {
	r := &domain.TickRecord{}
	var failuresJSON, activationsJSON []byte
	if err := row.Scan(&r.ID, &r.RunID, &r.Network, &r.Tick, &r.Attempts, &r.Threshold, &r.Executed, &failuresJSON, &activationsJSON, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(failuresJSON, &r.Failures); err != nil {
		return nil, fmt.Errorf("unmarshal failures: %w", err)
	}
	if err := json.Unmarshal(activationsJSON, &r.Activations); err != nil {
		return nil, fmt.Errorf("unmarshal activations: %w", err)
	}
	return r, nil
}
