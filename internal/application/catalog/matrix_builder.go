package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// GenerateMatrixInput entrada ya resuelta del constructor de matriz.
type GenerateMatrixInput struct {
	Sizes     []entity.Size  // orden de la grade
	Colors    []entity.Color // orden de selección
	UnitPrice decimal.Decimal
	Seeds     []entity.StockSeed
}

// MatrixRequest entrada por IDs; se resuelve contra el catálogo antes de generar.
type MatrixRequest struct {
	GradeID   string
	ColorIDs  []string
	UnitPrice decimal.Decimal
	Seeds     []entity.StockSeed
}

// MatrixBuilder expande colores × tamaños en candidatos de SKU con código de barras.
type MatrixBuilder struct {
	alloc    SequenceAllocator
	grades   repository.GradeRepository
	colors   repository.ColorRepository
	prefix   string
	fallback bool
	local    *localGenerator
	metrics  Metrics
	log      *logger.Logger
}

// MatrixOption configura el MatrixBuilder.
type MatrixOption func(*MatrixBuilder)

// WithOfflineFallback habilita los códigos provisionales cuando el contador no responde.
func WithOfflineFallback(enabled bool) MatrixOption {
	return func(b *MatrixBuilder) { b.fallback = enabled }
}

// WithMatrixMetrics registra los códigos provisionales emitidos.
func WithMatrixMetrics(m Metrics) MatrixOption {
	return func(b *MatrixBuilder) { b.metrics = m }
}

// WithClock reemplaza el reloj del generador local.
func WithClock(now func() time.Time) MatrixOption {
	return func(b *MatrixBuilder) { b.local = newLocalGenerator(now) }
}

// NewMatrixBuilder construye el caso de uso. prefix es el prefijo GS1 de la empresa.
func NewMatrixBuilder(
	alloc SequenceAllocator,
	grades repository.GradeRepository,
	colors repository.ColorRepository,
	prefix string,
	log *logger.Logger,
	opts ...MatrixOption,
) *MatrixBuilder {
	b := &MatrixBuilder{
		alloc:  alloc,
		grades: grades,
		colors: colors,
		prefix: prefix,
		local:  newLocalGenerator(time.Now),
		log:    log.Component("matrix"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build resuelve la grade y los colores y genera la matriz.
func (b *MatrixBuilder) Build(ctx context.Context, req MatrixRequest) ([]entity.VariantCandidate, error) {
	if len(req.ColorIDs) == 0 {
		return nil, domain.ErrEmptyColorSet
	}
	grade, err := b.grades.GetByID(ctx, req.GradeID)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, fmt.Errorf("%w: grade %s", domain.ErrNotFound, req.GradeID)
	}
	found, err := b.colors.GetByIDs(ctx, req.ColorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Color, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	colors := make([]entity.Color, 0, len(req.ColorIDs))
	seen := make(map[string]bool, len(req.ColorIDs))
	for _, id := range req.ColorIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: color %s", domain.ErrNotFound, id)
		}
		colors = append(colors, c)
	}
	return b.GenerateVariantMatrix(ctx, GenerateMatrixInput{
		Sizes:     grade.Sizes,
		Colors:    colors,
		UnitPrice: req.UnitPrice,
		Seeds:     req.Seeds,
	})
}

// GenerateVariantMatrix devuelve un candidato por par (color, tamaño): colores en el
// ciclo externo, tamaños en el interno. Las validaciones de vacío ocurren antes de
// pedir cualquier valor al contador.
func (b *MatrixBuilder) GenerateVariantMatrix(ctx context.Context, in GenerateMatrixInput) ([]entity.VariantCandidate, error) {
	if len(in.Sizes) == 0 {
		return nil, domain.ErrEmptyGrade
	}
	if len(in.Colors) == 0 {
		return nil, domain.ErrEmptyColorSet
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}

	out := make([]entity.VariantCandidate, 0, len(in.Colors)*len(in.Sizes))
	used := make(map[string]struct{}, cap(out))
	offline := false

	for _, color := range in.Colors {
		for _, size := range in.Sizes {
			barcode, provisional, err := b.nextBarcode(ctx, &offline)
			if err != nil {
				return nil, err
			}
			if _, dup := used[barcode]; dup {
				return nil, fmt.Errorf("%w: %s en (%s, %s)", domain.ErrDuplicateBarcode, barcode, color.ID, size.ID)
			}
			used[barcode] = struct{}{}
			out = append(out, entity.VariantCandidate{
				Color:       color,
				Size:        size,
				Barcode:     barcode,
				UnitPrice:   in.UnitPrice,
				Provisional: provisional,
				StockSeeds:  append([]entity.StockSeed(nil), in.Seeds...),
			})
		}
	}
	if offline {
		b.log.Warn().Int("candidates", len(out)).Msg("matriz generada con códigos provisionales")
	}
	return out, nil
}

// nextBarcode pide un valor al contador; tras el primer ErrAllocationFailed (si el
// fallback está habilitado) el resto de la matriz usa el generador local.
func (b *MatrixBuilder) nextBarcode(ctx context.Context, offline *bool) (string, bool, error) {
	if !*offline {
		seq, err := b.alloc.Allocate(ctx, entity.BarcodeSequenceKey)
		if err == nil {
			code, err := ComposeBarcode(b.prefix, seq)
			return code, false, err
		}
		if !b.fallback || !errors.Is(err, domain.ErrAllocationFailed) {
			return "", false, err
		}
		b.log.Warn().Err(err).Msg("contador de códigos no disponible, se usa generación local")
		*offline = true
	}
	code, err := b.local.next()
	if err != nil {
		return "", false, err
	}
	if b.metrics != nil {
		b.metrics.ObserveProvisionalBarcode()
	}
	return code, true, nil
}
