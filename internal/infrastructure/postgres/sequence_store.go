package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sku-matrix-api/internal/application/sequence"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

var _ sequence.Store = (*SequenceStore)(nil)

// SequenceStore contadores sobre sequence_counters. Cada incremento es una transacción
// con la fila bloqueada (SELECT ... FOR UPDATE).
type SequenceStore struct {
	pool *pgxpool.Pool
}

// NewSequenceStore construye el store.
func NewSequenceStore(pool *pgxpool.Pool) *SequenceStore {
	return &SequenceStore{pool: pool}
}

// Current devuelve el último valor emitido (0 si la fila no existe).
func (s *SequenceStore) Current(ctx context.Context, key entity.SequenceKey) (int64, error) {
	row, err := NewSequenceRepository(s.pool).Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return row.Counter, nil
}

// Increment crea la fila si falta, la bloquea y guarda counter+1.
func (s *SequenceStore) Increment(ctx context.Context, key entity.SequenceKey) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repo := NewSequenceRepository(tx)
	if err := repo.Create(ctx, key); err != nil {
		return 0, err
	}
	row, err := repo.GetForUpdate(ctx, key)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, fmt.Errorf("counter %s: fila no encontrada tras crear", key)
	}
	next := row.Counter + 1
	if err := repo.SetCounter(ctx, key, next); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return next, nil
}
