package repository

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// GradeRepository lectura de grades con sus tamaños ordenados.
type GradeRepository interface {
	// GetByID devuelve nil, nil si la grade no existe.
	GetByID(ctx context.Context, id string) (*entity.Grade, error)
}

// ColorRepository lectura de colores.
type ColorRepository interface {
	// GetByIDs devuelve los colores encontrados; los IDs inexistentes se omiten.
	GetByIDs(ctx context.Context, ids []string) ([]entity.Color, error)
}

// StoreRepository lectura de tiendas.
type StoreRepository interface {
	// List devuelve las tiendas (todas si ids es vacío), ordenadas por código.
	// Sin includeInactive solo se devuelven las activas.
	List(ctx context.Context, ids []string, includeInactive bool) ([]entity.Store, error)
}
