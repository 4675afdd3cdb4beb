package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresAssetRepository struct {
	db Querier
}

// NewPostgresAssetRepository persists one row per event in the assets
// table. Expected schema:
//
//	CREATE TABLE assets (
//	    id         UUID PRIMARY KEY,
//	    project    TEXT NOT NULL,
//	    event_name TEXT NOT NULL,
//	    timestamp  DOUBLE PRECISION NOT NULL,
//	    variations TEXT[] NOT NULL,
//	    prompts    TEXT[] NOT NULL DEFAULT '{}',
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
func NewPostgresAssetRepository(db Querier) ports.AssetRepository {
	return &postgresAssetRepository{
		db: db,
	}
}

func (r *postgresAssetRepository) Insert(ctx context.Context, rec *domain.AssetRecord) error {
	query := `
		INSERT INTO assets (id, project, event_name, timestamp, variations, prompts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	id := uuid.NewString()
	err := r.db.QueryRow(ctx, query, id, rec.Project, rec.EventName, rec.Timestamp, rec.Variations, rec.Prompts).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

func (r *postgresAssetRepository) UpdateVariation(ctx context.Context, id string, index int, url, prompt string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	// Postgres arrays are 1-based; only the addressed slot changes. The
	// cardinality guard keeps an out-of-range index from extending the
	// array with NULL padding — it reads as not found instead.
	query := `
		UPDATE assets
		SET variations[$2] = $3, prompts[$2] = $4, updated_at = NOW()
		WHERE id = $1 AND cardinality(variations) >= $2
	`
	ct, err := r.db.Exec(ctx, query, id, index+1, url, prompt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
