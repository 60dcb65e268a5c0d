package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo filas de sequence_counters (usable con pool o tx).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

const selectCounter = `
	SELECT collection, season, status, counter, updated_at
	FROM sequence_counters WHERE collection = $1 AND season = $2`

// Get devuelve la fila o nil si la llave nunca se usó.
func (r *SequenceRepo) Get(ctx context.Context, key entity.SequenceKey) (*entity.Collection, error) {
	return r.get(ctx, selectCounter, key)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *SequenceRepo) GetForUpdate(ctx context.Context, key entity.SequenceKey) (*entity.Collection, error) {
	return r.get(ctx, selectCounter+` FOR UPDATE`, key)
}

func (r *SequenceRepo) get(ctx context.Context, query string, key entity.SequenceKey) (*entity.Collection, error) {
	var c entity.Collection
	err := r.q.QueryRow(ctx, query, key.Collection, key.Season).Scan(
		&c.Code, &c.Season, &c.Status, &c.Counter, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get counter %s: %w", key, err)
	}
	return &c, nil
}

// Create inserta la fila con contador 0; no hace nada si ya existe.
func (r *SequenceRepo) Create(ctx context.Context, key entity.SequenceKey) error {
	query := `
		INSERT INTO sequence_counters (collection, season, status, counter, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (collection, season) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, key.Collection, key.Season, entity.CollectionStatusOpen); err != nil {
		return fmt.Errorf("create counter %s: %w", key, err)
	}
	return nil
}

// SetCounter guarda el último valor emitido.
func (r *SequenceRepo) SetCounter(ctx context.Context, key entity.SequenceKey, value int64) error {
	query := `UPDATE sequence_counters SET counter = $3, updated_at = now() WHERE collection = $1 AND season = $2`
	tag, err := r.q.Exec(ctx, query, key.Collection, key.Season, value)
	if err != nil {
		return fmt.Errorf("set counter %s: %w", key, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("set counter %s: %d filas afectadas", key, tag.RowsAffected())
	}
	return nil
}
