package entity

import "time"

// Estados de una colección.
const (
	CollectionStatusOpen   = "OPEN"
	CollectionStatusClosed = "CLOSED"
)

// Collection agrupa los productos de una colección + temporada. Counter es el último
// valor de secuencia emitido para referencias de esa pareja; solo crece.
type Collection struct {
	Code      string // 2 caracteres
	Season    string // 2 caracteres
	Status    string
	Counter   int64
	UpdatedAt time.Time
}

// Key devuelve la llave de secuencia de la colección.
func (c Collection) Key() SequenceKey {
	return SequenceKey{Collection: c.Code, Season: c.Season}
}
