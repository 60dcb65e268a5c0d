package repository

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByReference devuelve nil, nil si la referencia no existe.
	GetByReference(ctx context.Context, reference string) (*entity.Product, error)
}
