package catalog

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

// VariantTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// El persistidor por lote abre una transacción por ítem para que un fallo no afecte a los demás.
type VariantTxRunner interface {
	RunVariant(ctx context.Context, fn func(
		variantRepo repository.VariantRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// SequenceAllocator contrato mínimo del servicio de secuencias usado por el catálogo.
// Lo implementa *sequence.Allocator.
type SequenceAllocator interface {
	Peek(ctx context.Context, key entity.SequenceKey) (int64, error)
	Allocate(ctx context.Context, key entity.SequenceKey) (int64, error)
}

// Metrics observador opcional de generación y persistencia de variantes.
type Metrics interface {
	ObserveProvisionalBarcode()
	ObserveBatchItem(result string)
}
