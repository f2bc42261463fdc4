package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumecompare/pkg/comparison"
	"github.com/artem13815/resumecompare/pkg/document"
)

// ComparisonRepository implements comparison.Repository on PostgreSQL.
type ComparisonRepository struct {
	pool *pgxpool.Pool
}

func NewComparisonRepository(pool *pgxpool.Pool) *ComparisonRepository {
	return &ComparisonRepository{pool: pool}
}

const comparisonColumns = `id, owner_id, filename, format, size_bytes, checksum, result, created_at`

func (r *ComparisonRepository) Create(ctx context.Context, rec comparison.Record) error {
	result, err := json.Marshal(rec.Response)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO comparisons (`+comparisonColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.OwnerID, rec.Filename, string(rec.Format), rec.SizeBytes, rec.Checksum, result, rec.CreatedAt)
	return err
}

func (r *ComparisonRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (comparison.Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+comparisonColumns+`
		FROM comparisons WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	rec, err := scanComparison(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return comparison.Record{}, comparison.ErrNotFound
	}
	return rec, err
}

func (r *ComparisonRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]comparison.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+comparisonColumns+`
		FROM comparisons WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []comparison.Record
	for rows.Next() {
		rec, err := scanComparison(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ComparisonRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comparisons WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return comparison.ErrNotFound
	}
	return nil
}

func scanComparison(row pgx.Row) (comparison.Record, error) {
	var (
		rec    comparison.Record
		format string
		result []byte
	)
	if err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Filename, &format, &rec.SizeBytes, &rec.Checksum, &result, &rec.CreatedAt); err != nil {
		return comparison.Record{}, err
	}
	rec.Format = document.Format(format)
	rec.CreatedAt = rec.CreatedAt.UTC()
	if err := json.Unmarshal(result, &rec.Response); err != nil {
		return comparison.Record{}, fmt.Errorf("decode result: %w", err)
	}
	return rec, nil
}
