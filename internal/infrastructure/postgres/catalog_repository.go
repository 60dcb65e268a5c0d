package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

var (
	_ repository.GradeRepository = (*GradeRepo)(nil)
	_ repository.ColorRepository = (*ColorRepo)(nil)
	_ repository.StoreRepository = (*StoreRepo)(nil)
)

// psql constructor de consultas con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// GradeRepo grades con sus tamaños.
type GradeRepo struct {
	q Querier
}

// NewGradeRepository construye el adaptador.
func NewGradeRepository(q Querier) *GradeRepo {
	return &GradeRepo{q: q}
}

// GetByID devuelve la grade con tamaños ordenados por posición, o nil.
func (r *GradeRepo) GetByID(ctx context.Context, id string) (*entity.Grade, error) {
	var g entity.Grade
	err := r.q.QueryRow(ctx, `SELECT id, name FROM grades WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grade: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, grade_id, label, description, position
		FROM sizes WHERE grade_id = $1 ORDER BY position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.Size
		if err := rows.Scan(&s.ID, &s.GradeID, &s.Label, &s.Description, &s.Position); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		g.Sizes = append(g.Sizes, s)
	}
	return &g, rows.Err()
}

// ColorRepo colores.
type ColorRepo struct {
	q Querier
}

// NewColorRepository construye el adaptador.
func NewColorRepository(q Querier) *ColorRepo {
	return &ColorRepo{q: q}
}

// GetByIDs devuelve los colores encontrados ordenados por código.
func (r *ColorRepo) GetByIDs(ctx context.Context, ids []string) ([]entity.Color, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, code, description FROM colors WHERE id = ANY($1) ORDER BY code`, ids)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()
	var out []entity.Color
	for rows.Next() {
		var c entity.Color
		if err := rows.Scan(&c.ID, &c.Code, &c.Description); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// StoreRepo tiendas.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// buildStoreListQuery arma el SELECT con los filtros opcionales.
func buildStoreListQuery(ids []string, includeInactive bool) (string, []interface{}, error) {
	b := psql.Select("id", "code", "name", "active", "created_at", "updated_at").
		From("stores").
		OrderBy("code")
	if len(ids) > 0 {
		b = b.Where(sq.Eq{"id": ids})
	}
	if !includeInactive {
		b = b.Where(sq.Eq{"active": true})
	}
	return b.ToSql()
}

// List devuelve las tiendas filtradas y ordenadas por código.
func (r *StoreRepo) List(ctx context.Context, ids []string, includeInactive bool) ([]entity.Store, error) {
	query, args, err := buildStoreListQuery(ids, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("build stores query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var out []entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
