package domain

import (
	"context"

	"github.com/google/uuid"
)

type TickStore interface {
	Create(ctx context.Context, r *TickRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*TickRecord, error)
	// ListRecent returns the newest records of a run first.
	ListRecent(ctx context.Context, runID uuid.UUID, limit int) ([]TickRecord, error)
}
