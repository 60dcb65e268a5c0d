package entity

import "time"

// Estados de un producto.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusInactive = "INACTIVE"
)

// Product representa el producto "padre" identificado por su referencia
// (colección-temporada-grupo+secuencia). Los SKU cuelgan de él como Variant.
type Product struct {
	ID          string
	Reference   string // ej. 25-01-10007, única
	Collection  string
	Season      string
	Group       string
	Sequence    int64
	GradeID     string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
