package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// UpsertSeed inserta o reemplaza la cantidad (por variante y tienda).
func (r *StockRepo) UpsertSeed(ctx context.Context, row *entity.StockRow) error {
	query := `
		INSERT INTO stock_levels (variant_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (variant_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, row.VariantID, row.StoreID, row.Quantity); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: tienda %s", domain.ErrInvalidReference, row.StoreID)
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// buildStockCellsQuery proyecta stock_levels a (tienda, color, tamaño) con los filtros opcionales.
func buildStockCellsQuery(q repository.StockQuery) (string, []interface{}, error) {
	b := psql.Select("sl.store_id", "v.color_id", "v.size_id", "SUM(sl.quantity)::bigint").
		From("stock_levels sl").
		Join("variants v ON v.id = sl.variant_id").
		Join("stores s ON s.id = sl.store_id").
		Where(sq.Eq{"v.product_id": q.ProductID}).
		GroupBy("sl.store_id", "v.color_id", "v.size_id").
		OrderBy("sl.store_id", "v.color_id", "v.size_id")
	if len(q.StoreIDs) > 0 {
		b = b.Where(sq.Eq{"sl.store_id": q.StoreIDs})
	}
	if !q.IncludeInactive {
		b = b.Where(sq.Eq{"s.active": true})
	}
	return b.ToSql()
}

// ListCells devuelve las celdas de stock del producto.
func (r *StockRepo) ListCells(ctx context.Context, q repository.StockQuery) ([]entity.StockCell, error) {
	query, args, err := buildStockCellsQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build stock query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock cells: %w", err)
	}
	defer rows.Close()
	var cells []entity.StockCell
	for rows.Next() {
		var c entity.StockCell
		if err := rows.Scan(&c.StoreID, &c.ColorID, &c.SizeID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock cell: %w", err)
		}
		cells = append(cells, c)
	}
	return cells, rows.Err()
}
