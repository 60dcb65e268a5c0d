package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

// Label datos impresos en una etiqueta de código de barras.
type Label struct {
	Reference   string
	Description string
	Barcode     string
	ColorCode   string
	ColorName   string
	SizeLabel   string
	UnitPrice   decimal.Decimal
}

// LabelRenderer genera el documento de etiquetas (PDF).
type LabelRenderer interface {
	Render(product *entity.Product, labels []Label) ([]byte, error)
}

// LabelsUseCase etiquetas de las variantes persistidas de un producto.
type LabelsUseCase struct {
	products repository.ProductRepository
	grades   repository.GradeRepository
	colors   repository.ColorRepository
	variants repository.VariantRepository
	renderer LabelRenderer
}

// NewLabelsUseCase construye el caso de uso.
func NewLabelsUseCase(
	products repository.ProductRepository,
	grades repository.GradeRepository,
	colors repository.ColorRepository,
	variants repository.VariantRepository,
	renderer LabelRenderer,
) *LabelsUseCase {
	return &LabelsUseCase{products: products, grades: grades, colors: colors, variants: variants, renderer: renderer}
}

// Labels arma las etiquetas ordenadas por color y posición del tamaño en la grade.
func (uc *LabelsUseCase) Labels(ctx context.Context, ref string) (*entity.Product, []Label, error) {
	product, err := uc.products.GetByReference(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, ref)
	}
	variants, err := uc.variants.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, nil, err
	}
	grade, err := uc.grades.GetByID(ctx, product.GradeID)
	if err != nil {
		return nil, nil, err
	}
	sizes := make(map[string]entity.Size)
	if grade != nil {
		for _, s := range grade.Sizes {
			sizes[s.ID] = s
		}
	}
	ids := make([]string, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ColorID)
	}
	found, err := uc.colors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	colors := make(map[string]entity.Color, len(found))
	for _, c := range found {
		colors[c.ID] = c
	}

	sort.SliceStable(variants, func(i, j int) bool {
		ci, cj := colors[variants[i].ColorID].Code, colors[variants[j].ColorID].Code
		if ci != cj {
			return ci < cj
		}
		return sizes[variants[i].SizeID].Position < sizes[variants[j].SizeID].Position
	})

	labels := make([]Label, 0, len(variants))
	for _, v := range variants {
		c := colors[v.ColorID]
		sizeLabel := sizes[v.SizeID].Label
		if sizeLabel == "" {
			sizeLabel = v.SizeID
		}
		labels = append(labels, Label{
			Reference:   product.Reference,
			Description: product.Description,
			Barcode:     v.Barcode,
			ColorCode:   c.Code,
			ColorName:   c.Description,
			SizeLabel:   sizeLabel,
			UnitPrice:   v.UnitPrice,
		})
	}
	return product, labels, nil
}

// RenderLabels devuelve el PDF de etiquetas del producto.
func (uc *LabelsUseCase) RenderLabels(ctx context.Context, ref string) ([]byte, error) {
	product, labels, err := uc.Labels(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: %s no tiene variantes", domain.ErrNotFound, ref)
	}
	return uc.renderer.Render(product, labels)
}
