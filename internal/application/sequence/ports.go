package sequence

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// Store almacén durable de contadores. Increment debe ser atómico por llave
// (bloqueo de fila o incremento nativo del backend), nunca leer-y-escribir sin aislamiento.
type Store interface {
	// Current devuelve el último valor emitido (0 si la llave nunca se usó) sin modificarlo.
	Current(ctx context.Context, key entity.SequenceKey) (int64, error)
	// Increment suma 1 al contador de forma atómica y devuelve el nuevo valor.
	Increment(ctx context.Context, key entity.SequenceKey) (int64, error)
}

// Metrics observador opcional de las asignaciones.
type Metrics interface {
	ObserveAllocation(key entity.SequenceKey, err error)
}
