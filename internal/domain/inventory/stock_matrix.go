package inventory

import "github.com/jhoicas/sku-matrix-api/internal/domain/entity"

// BuildStockMatrix arma la tabulación tienda × color × tamaño a partir de las celdas.
// Todos los subtotales se calculan en una sola pasada sobre las mismas celdas que
// quedan en el resultado, por lo que nunca divergen de lo mostrado.
//
// Las celdas de tiendas fuera del eje se descartan (no fueron solicitadas); colores o
// tamaños presentes en celdas pero ausentes de los ejes se agregan al final del eje.
func BuildStockMatrix(
	reference string,
	stores []entity.Store,
	colors []entity.Color,
	sizes []entity.Size,
	cells []entity.StockCell,
) *entity.StockMatrix {
	m := &entity.StockMatrix{
		Reference: reference,
		Stores:    append([]entity.Store(nil), stores...),
		Colors:    append([]entity.Color(nil), colors...),
		Sizes:     append([]entity.Size(nil), sizes...),
		Cells:     make(map[entity.CellKey]int64, len(cells)),
		Totals: entity.StockTotals{
			ByStore:      make(map[string]int64, len(stores)),
			ByStoreColor: make(map[entity.StoreColorKey]int64),
			ByColor:      make(map[string]int64, len(colors)),
			BySize:       make(map[string]int64, len(sizes)),
		},
	}

	storeSet := make(map[string]struct{}, len(stores))
	for _, s := range stores {
		storeSet[s.ID] = struct{}{}
		m.Totals.ByStore[s.ID] = 0
	}
	colorSet := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		colorSet[c.ID] = struct{}{}
		m.Totals.ByColor[c.ID] = 0
	}
	sizeSet := make(map[string]struct{}, len(sizes))
	for _, s := range sizes {
		sizeSet[s.ID] = struct{}{}
		m.Totals.BySize[s.ID] = 0
	}

	for _, c := range cells {
		if _, ok := storeSet[c.StoreID]; !ok {
			continue
		}
		if _, ok := colorSet[c.ColorID]; !ok {
			colorSet[c.ColorID] = struct{}{}
			m.Colors = append(m.Colors, entity.Color{ID: c.ColorID})
		}
		if _, ok := sizeSet[c.SizeID]; !ok {
			sizeSet[c.SizeID] = struct{}{}
			m.Sizes = append(m.Sizes, entity.Size{ID: c.SizeID})
		}

		key := entity.CellKey{StoreID: c.StoreID, ColorID: c.ColorID, SizeID: c.SizeID}
		m.Cells[key] += c.Quantity
		m.Totals.ByStoreColor[entity.StoreColorKey{StoreID: c.StoreID, ColorID: c.ColorID}] += c.Quantity
		m.Totals.ByStore[c.StoreID] += c.Quantity
		m.Totals.ByColor[c.ColorID] += c.Quantity
		m.Totals.BySize[c.SizeID] += c.Quantity
		m.Totals.Grand += c.Quantity
	}

	m.Empty = len(m.Cells) == 0 || m.Totals.Grand == 0
	return m
}
