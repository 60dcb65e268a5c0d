package repository

import (
	"context"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// StockQuery filtro de la consulta de celdas de stock.
type StockQuery struct {
	ProductID       string
	StoreIDs        []string
	IncludeInactive bool
}

// StockRepository define el puerto para el stock por variante y tienda.
type StockRepository interface {
	// UpsertSeed inserta o reemplaza la cantidad inicial de una variante en una tienda.
	UpsertSeed(ctx context.Context, row *entity.StockRow) error
	// ListCells devuelve las celdas (tienda, color, tamaño, cantidad) de un producto.
	ListCells(ctx context.Context, q StockQuery) ([]entity.StockCell, error)
}
