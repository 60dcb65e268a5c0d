package repository

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia de los SKU (variantes).
type VariantRepository interface {
	// GetByBarcode devuelve nil, nil si el código no existe.
	GetByBarcode(ctx context.Context, barcode string) (*entity.Variant, error)
	// GetBySKU busca la variante (producto, color, tamaño); nil, nil si no existe.
	GetBySKU(ctx context.Context, productID, colorID, sizeID string) (*entity.Variant, error)
	// Upsert inserta o actualiza la variante por código de barras. created indica inserción.
	Upsert(ctx context.Context, variant *entity.Variant) (created bool, err error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Variant, error)
}
