package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo SKU persistidos (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const selectVariant = `
	SELECT id, product_id, product_reference, color_id, size_id, barcode, unit_price, price_table_id, created_at, updated_at
	FROM variants`

// GetByBarcode obtiene la variante dueña del código.
func (r *VariantRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Variant, error) {
	return r.getOne(ctx, selectVariant+` WHERE barcode = $1`, barcode)
}

// GetBySKU obtiene la variante (producto, color, tamaño).
func (r *VariantRepo) GetBySKU(ctx context.Context, productID, colorID, sizeID string) (*entity.Variant, error) {
	return r.getOne(ctx, selectVariant+` WHERE product_id = $1 AND color_id = $2 AND size_id = $3`, productID, colorID, sizeID)
}

func (r *VariantRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// Upsert inserta o actualiza por código de barras. xmax = 0 solo en filas recién insertadas.
// El DO UPDATE solo aplica si la fila existente es el mismo SKU; si el código ya es de
// otra variante no se devuelve fila y se reporta ErrDuplicateBarcode.
func (r *VariantRepo) Upsert(ctx context.Context, v *entity.Variant) (bool, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	query := `
		INSERT INTO variants (id, product_id, product_reference, color_id, size_id, barcode, unit_price, price_table_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (barcode) DO UPDATE SET
			unit_price = EXCLUDED.unit_price,
			price_table_id = EXCLUDED.price_table_id,
			updated_at = now()
		WHERE variants.product_id = EXCLUDED.product_id
		  AND variants.color_id = EXCLUDED.color_id
		  AND variants.size_id = EXCLUDED.size_id
		RETURNING id, (xmax = 0) AS inserted`
	var inserted bool
	err := r.q.QueryRow(ctx, query,
		v.ID, v.ProductID, v.ProductReference, v.ColorID, v.SizeID, v.Barcode,
		v.UnitPrice, v.PriceTableID, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID, &inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: %s pertenece a otra variante", domain.ErrDuplicateBarcode, v.Barcode)
		}
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: variante (%s, %s)", domain.ErrDuplicate, v.ColorID, v.SizeID)
		}
		return false, fmt.Errorf("upsert variant: %w", err)
	}
	return inserted, nil
}

// ListByProduct lista las variantes del producto.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Variant, error) {
	rows, err := r.q.Query(ctx, selectVariant+` WHERE product_id = $1 ORDER BY created_at, barcode`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var out []*entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.ProductReference, &v.ColorID, &v.SizeID,
		&v.Barcode, &v.UnitPrice, &v.PriceTableID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
