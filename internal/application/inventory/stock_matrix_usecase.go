package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/inventory"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// StockMatrixQuery filtros de la consulta de matriz de stock.
type StockMatrixQuery struct {
	Reference       string
	StoreIDs        []string
	IncludeInactive bool
}

// StockMatrixUseCase consulta el stock de una referencia tabulado por tienda × color × tamaño.
type StockMatrixUseCase struct {
	products repository.ProductRepository
	grades   repository.GradeRepository
	colors   repository.ColorRepository
	stores   repository.StoreRepository
	variants repository.VariantRepository
	stock    repository.StockRepository
	log      *logger.Logger
}

// NewStockMatrixUseCase construye el caso de uso.
func NewStockMatrixUseCase(
	products repository.ProductRepository,
	grades repository.GradeRepository,
	colors repository.ColorRepository,
	stores repository.StoreRepository,
	variants repository.VariantRepository,
	stock repository.StockRepository,
	log *logger.Logger,
) *StockMatrixUseCase {
	return &StockMatrixUseCase{
		products: products,
		grades:   grades,
		colors:   colors,
		stores:   stores,
		variants: variants,
		stock:    stock,
		log:      log.Component("stock-matrix"),
	}
}

// GetStockMatrix distingue referencia inexistente (ErrReferenceNotFound) de referencia
// sin stock (matriz en cero con Empty=true).
func (uc *StockMatrixUseCase) GetStockMatrix(ctx context.Context, q StockMatrixQuery) (*entity.StockMatrix, error) {
	if q.Reference == "" {
		return nil, fmt.Errorf("%w: referencia requerida", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByReference(ctx, q.Reference)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, q.Reference)
	}

	stores, err := uc.stores.List(ctx, q.StoreIDs, q.IncludeInactive)
	if err != nil {
		return nil, err
	}
	variants, err := uc.variants.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	grade, err := uc.grades.GetByID(ctx, product.GradeID)
	if err != nil {
		return nil, err
	}
	colors, err := uc.colorAxis(ctx, variants)
	if err != nil {
		return nil, err
	}
	sizes := sizeAxis(grade, variants)

	storeIDs := make([]string, 0, len(stores))
	for _, s := range stores {
		storeIDs = append(storeIDs, s.ID)
	}
	var cells []entity.StockCell
	if len(storeIDs) > 0 {
		cells, err = uc.stock.ListCells(ctx, repository.StockQuery{
			ProductID:       product.ID,
			StoreIDs:        storeIDs,
			IncludeInactive: q.IncludeInactive,
		})
		if err != nil {
			return nil, err
		}
	}

	m := inventory.BuildStockMatrix(product.Reference, stores, colors, sizes, cells)
	uc.log.Debug().Str("reference", product.Reference).Int("stores", len(stores)).
		Int("cells", len(cells)).Int64("total", m.Totals.Grand).Msg("matriz de stock")
	return m, nil
}

// colorAxis colores de las variantes persistidas, ordenados por código.
func (uc *StockMatrixUseCase) colorAxis(ctx context.Context, variants []*entity.Variant) ([]entity.Color, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, v := range variants {
		if !seen[v.ColorID] {
			seen[v.ColorID] = true
			ids = append(ids, v.ColorID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	colors, err := uc.colors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(colors))
	for _, c := range colors {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			colors = append(colors, entity.Color{ID: id, Code: id})
		}
	}
	sort.SliceStable(colors, func(i, j int) bool { return colors[i].Code < colors[j].Code })
	return colors, nil
}

// sizeAxis tamaños de la grade en su orden; con variantes, solo los que se usan.
func sizeAxis(grade *entity.Grade, variants []*entity.Variant) []entity.Size {
	if grade == nil {
		return nil
	}
	if len(variants) == 0 {
		return append([]entity.Size(nil), grade.Sizes...)
	}
	used := make(map[string]bool, len(variants))
	for _, v := range variants {
		used[v.SizeID] = true
	}
	out := make([]entity.Size, 0, len(grade.Sizes))
	for _, s := range grade.Sizes {
		if used[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
