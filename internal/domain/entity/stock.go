package entity

import "time"

// StockCell cantidad disponible de un (color, tamaño) de una referencia en una tienda.
// Proyección de solo lectura para la matriz de stock.
type StockCell struct {
	StoreID  string
	ColorID  string
	SizeID   string
	Quantity int64
}

// StockRow fila de stock por variante y tienda (lo que escribe la carga inicial).
type StockRow struct {
	VariantID string
	StoreID   string
	Quantity  int64
	UpdatedAt time.Time
}
