package entity

import "time"

// Store representa una tienda (loja) donde se mantiene inventario.
type Store struct {
	ID        string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
