package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StockSeedRequest cantidad inicial por tienda.
type StockSeedRequest struct {
	StoreID  string `json:"store_id"`
	Quantity int64  `json:"quantity"`
}

// GenerateMatrixRequest entrada de POST /api/variants/matrix.
type GenerateMatrixRequest struct {
	GradeID   string             `json:"grade_id"`
	ColorIDs  []string           `json:"color_ids"`
	UnitPrice decimal.Decimal    `json:"unit_price"`
	Seeds     []StockSeedRequest `json:"seeds"`
}

// VariantCandidateResponse candidato generado; provisional=true si el código se generó
// sin el contador del servidor.
type VariantCandidateResponse struct {
	ColorID     string             `json:"color_id"`
	ColorCode   string             `json:"color_code"`
	SizeID      string             `json:"size_id"`
	SizeLabel   string             `json:"size_label"`
	Barcode     string             `json:"barcode"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Provisional bool               `json:"provisional"`
	Seeds       []StockSeedRequest `json:"seeds,omitempty"`
}

// VariantItemRequest ítem de un lote. Acepta los nombres alternativos que envían los
// clientes (cor_id, tamanho_id, ean, codigo_barras, preco); se normalizan aquí y en
// ningún otro lugar.
type VariantItemRequest struct {
	ColorID     string             `json:"color_id"`
	SizeID      string             `json:"size_id"`
	Barcode     string             `json:"barcode"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Provisional bool               `json:"provisional"`
	Seeds       []StockSeedRequest `json:"seeds"`
}

// UnmarshalJSON resuelve los alias; el nombre canónico tiene prioridad.
func (r *VariantItemRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ColorID      string             `json:"color_id"`
		CorID        string             `json:"cor_id"`
		SizeID       string             `json:"size_id"`
		TamanhoID    string             `json:"tamanho_id"`
		Barcode      string             `json:"barcode"`
		EAN          string             `json:"ean"`
		CodigoBarras string             `json:"codigo_barras"`
		UnitPrice    *decimal.Decimal   `json:"unit_price"`
		Preco        *decimal.Decimal   `json:"preco"`
		Provisional  bool               `json:"provisional"`
		Seeds        []StockSeedRequest `json:"seeds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ColorID = firstNonEmpty(raw.ColorID, raw.CorID)
	r.SizeID = firstNonEmpty(raw.SizeID, raw.TamanhoID)
	r.Barcode = firstNonEmpty(raw.Barcode, raw.EAN, raw.CodigoBarras)
	switch {
	case raw.UnitPrice != nil:
		r.UnitPrice = *raw.UnitPrice
	case raw.Preco != nil:
		r.UnitPrice = *raw.Preco
	default:
		r.UnitPrice = decimal.Zero
	}
	r.Provisional = raw.Provisional
	r.Seeds = raw.Seeds
	return nil
}

// PersistBatchRequest entrada de POST /api/variants/batch.
type PersistBatchRequest struct {
	Reference    string               `json:"reference"`
	PriceTableID string               `json:"price_table_id"`
	Items        []VariantItemRequest `json:"items"`
}

// BatchItemResponse ítem persistido con su código definitivo.
type BatchItemResponse struct {
	Index     int    `json:"index"`
	VariantID string `json:"variant_id"`
	ColorID   string `json:"color_id"`
	SizeID    string `json:"size_id"`
	Barcode   string `json:"barcode"`
	Created   bool   `json:"created"`
}

// BatchItemErrorResponse falla de un ítem por índice.
type BatchItemErrorResponse struct {
	Index   int    `json:"index"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// PersistBatchResponse resumen del lote.
type PersistBatchResponse struct {
	CreatedCount int                      `json:"created_count"`
	UpdatedCount int                      `json:"updated_count"`
	Items        []BatchItemResponse      `json:"items"`
	Errors       []BatchItemErrorResponse `json:"errors"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
