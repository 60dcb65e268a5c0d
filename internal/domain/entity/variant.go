package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSeed cantidad inicial para una tienda, escrita una sola vez al persistir la variante.
type StockSeed struct {
	StoreID  string
	Quantity int64
}

// VariantCandidate es un SKU (color, tamaño) generado en memoria por el constructor de
// matriz. Provisional indica que el código de barras se generó localmente (sin el
// contador del servidor) y debe re-emitirse antes de ser definitivo.
type VariantCandidate struct {
	Color       Color
	Size        Size
	Barcode     string
	UnitPrice   decimal.Decimal
	Provisional bool
	StockSeeds  []StockSeed
}

// Variant es un SKU persistido. El código de barras es su llave natural.
type Variant struct {
	ID               string
	ProductID        string
	ProductReference string
	ColorID          string
	SizeID           string
	Barcode          string
	UnitPrice        decimal.Decimal
	PriceTableID     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SameSKU indica si dos variantes representan el mismo (producto, color, tamaño).
func (v Variant) SameSKU(other Variant) bool {
	return v.ProductID == other.ProductID && v.ColorID == other.ColorID && v.SizeID == other.SizeID
}
