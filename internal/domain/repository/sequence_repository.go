package repository

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// SequenceRepository define el puerto para las filas de contador (colección+temporada
// y el contador reservado de códigos de barras). Usado dentro de transacciones.
type SequenceRepository interface {
	// Get devuelve la fila del contador o nil si nunca se usó.
	Get(ctx context.Context, key entity.SequenceKey) (*entity.Collection, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); nil si no existe.
	GetForUpdate(ctx context.Context, key entity.SequenceKey) (*entity.Collection, error)
	// Create inserta la fila con contador 0 si no existe (idempotente).
	Create(ctx context.Context, key entity.SequenceKey) error
	// SetCounter guarda el nuevo último valor emitido.
	SetCounter(ctx context.Context, key entity.SequenceKey, value int64) error
}
