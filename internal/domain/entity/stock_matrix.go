package entity

// CellKey coordenada tipada de la matriz (tienda, color, tamaño).
type CellKey struct {
	StoreID string
	ColorID string
	SizeID  string
}

// StoreColorKey coordenada (tienda, color) para el total de color dentro de una tienda.
type StoreColorKey struct {
	StoreID string
	ColorID string
}

// StockTotals subtotales de la matriz. Todos se derivan de Cells.
type StockTotals struct {
	ByStore      map[string]int64
	ByStoreColor map[StoreColorKey]int64
	ByColor      map[string]int64
	BySize       map[string]int64
	Grand        int64
}

// StockMatrix tabulación cruzada tienda × color × tamaño de una referencia.
// Las celdas ausentes valen cero; los ejes siempre están completos.
type StockMatrix struct {
	Reference string
	Stores    []Store
	Colors    []Color
	Sizes     []Size
	Cells     map[CellKey]int64
	Totals    StockTotals
	Empty     bool // la referencia existe pero no tiene cantidades
}

// Quantity devuelve la cantidad en la coordenada (cero si no hay celda).
func (m *StockMatrix) Quantity(storeID, colorID, sizeID string) int64 {
	return m.Cells[CellKey{StoreID: storeID, ColorID: colorID, SizeID: sizeID}]
}
