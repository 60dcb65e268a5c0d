package dto

import (
	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// ToProductResponse convierte la entidad a su salida HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Reference:   p.Reference,
		Collection:  p.Collection,
		Season:      p.Season,
		Group:       p.Group,
		Sequence:    p.Sequence,
		GradeID:     p.GradeID,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToMatrixRequest convierte la entrada HTTP del constructor de matriz.
func ToMatrixRequest(in GenerateMatrixRequest) catalog.MatrixRequest {
	return catalog.MatrixRequest{
		GradeID:   in.GradeID,
		ColorIDs:  in.ColorIDs,
		UnitPrice: in.UnitPrice,
		Seeds:     toSeeds(in.Seeds),
	}
}

// ToCandidateResponses convierte los candidatos generados.
func ToCandidateResponses(cands []entity.VariantCandidate) []VariantCandidateResponse {
	out := make([]VariantCandidateResponse, 0, len(cands))
	for _, c := range cands {
		out = append(out, VariantCandidateResponse{
			ColorID:     c.Color.ID,
			ColorCode:   c.Color.Code,
			SizeID:      c.Size.ID,
			SizeLabel:   c.Size.Label,
			Barcode:     c.Barcode,
			UnitPrice:   c.UnitPrice,
			Provisional: c.Provisional,
			Seeds:       fromSeeds(c.StockSeeds),
		})
	}
	return out
}

// ToPersistBatchInput convierte el lote HTTP; los alias ya vienen resueltos.
func ToPersistBatchInput(in PersistBatchRequest) catalog.PersistBatchInput {
	items := make([]entity.VariantCandidate, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.VariantCandidate{
			Color:       entity.Color{ID: it.ColorID},
			Size:        entity.Size{ID: it.SizeID},
			Barcode:     it.Barcode,
			UnitPrice:   it.UnitPrice,
			Provisional: it.Provisional,
			StockSeeds:  toSeeds(it.Seeds),
		})
	}
	return catalog.PersistBatchInput{
		ProductReference: in.Reference,
		PriceTableID:     in.PriceTableID,
		Items:            items,
	}
}

// ToPersistBatchResponse convierte el resumen del lote.
func ToPersistBatchResponse(res *catalog.BatchResult) PersistBatchResponse {
	out := PersistBatchResponse{
		CreatedCount: res.CreatedCount,
		UpdatedCount: res.UpdatedCount,
		Items:        make([]BatchItemResponse, 0, len(res.Items)),
		Errors:       make([]BatchItemErrorResponse, 0, len(res.Errors)),
	}
	for _, it := range res.Items {
		out.Items = append(out.Items, BatchItemResponse{
			Index:     it.Index,
			VariantID: it.VariantID,
			ColorID:   it.ColorID,
			SizeID:    it.SizeID,
			Barcode:   it.Barcode,
			Created:   it.Created,
		})
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, BatchItemErrorResponse{Index: e.Index, Reason: e.Reason, Message: e.Message})
	}
	return out
}

// ToStockMatrixResponse arma la forma anidada del front a partir de la matriz tipada.
// Cada tienda lista todos los colores del eje y cada color todos los tamaños, en cero si
// no hay celda.
func ToStockMatrixResponse(m *entity.StockMatrix) StockMatrixResponse {
	out := StockMatrixResponse{
		Referencia: m.Reference,
		Eixos: StockAxes{
			Lojas:    make([]StoreAxis, 0, len(m.Stores)),
			Cores:    make([]ColorAxis, 0, len(m.Colors)),
			Tamanhos: make([]SizeAxis, 0, len(m.Sizes)),
		},
		Matrix: StockMatrixBody{
			PorLoja: make([]StockStoreBlock, 0, len(m.Stores)),
			Totais: StockTotalsResponse{
				PorCor:     make(map[string]int64, len(m.Colors)),
				PorTamanho: make(map[string]int64, len(m.Sizes)),
				Geral:      m.Totals.Grand,
			},
		},
		Vazio: m.Empty,
	}
	for _, s := range m.Stores {
		out.Eixos.Lojas = append(out.Eixos.Lojas, StoreAxis{ID: s.ID, Codigo: s.Code, Nome: s.Name, Ativa: s.Active})
	}
	for _, c := range m.Colors {
		out.Eixos.Cores = append(out.Eixos.Cores, ColorAxis{ID: c.ID, Codigo: c.Code, Descricao: c.Description})
		out.Matrix.Totais.PorCor[c.ID] = m.Totals.ByColor[c.ID]
	}
	for _, s := range m.Sizes {
		out.Eixos.Tamanhos = append(out.Eixos.Tamanhos, SizeAxis{ID: s.ID, Rotulo: s.Label, Posicao: s.Position})
		out.Matrix.Totais.PorTamanho[s.ID] = m.Totals.BySize[s.ID]
	}

	for _, s := range m.Stores {
		block := StockStoreBlock{
			LojaID:    s.ID,
			Cores:     make([]StockColorRow, 0, len(m.Colors)),
			TotalLoja: m.Totals.ByStore[s.ID],
		}
		for _, c := range m.Colors {
			row := StockColorRow{
				CorID:    c.ID,
				Tamanhos: make(map[string]int64, len(m.Sizes)),
				TotalCor: m.Totals.ByStoreColor[entity.StoreColorKey{StoreID: s.ID, ColorID: c.ID}],
			}
			for _, z := range m.Sizes {
				row.Tamanhos[z.ID] = m.Quantity(s.ID, c.ID, z.ID)
			}
			block.Cores = append(block.Cores, row)
		}
		out.Matrix.PorLoja = append(out.Matrix.PorLoja, block)
	}
	return out
}

func toSeeds(in []StockSeedRequest) []entity.StockSeed {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.StockSeed, 0, len(in))
	for _, s := range in {
		out = append(out, entity.StockSeed{StoreID: s.StoreID, Quantity: s.Quantity})
	}
	return out
}

func fromSeeds(in []entity.StockSeed) []StockSeedRequest {
	if len(in) == 0 {
		return nil
	}
	out := make([]StockSeedRequest, 0, len(in))
	for _, s := range in {
		out = append(out, StockSeedRequest{StoreID: s.StoreID, Quantity: s.Quantity})
	}
	return out
}
