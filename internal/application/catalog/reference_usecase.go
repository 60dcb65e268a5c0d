package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/reference"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// Preview referencia que recibiría el próximo producto de la colección.
type Preview struct {
	Reference string
	Sequence  int64
}

// CreateProductInput datos para registrar un producto nuevo.
type CreateProductInput struct {
	Collection  string
	Season      string
	Group       string
	GradeID     string
	Description string
}

// ReferenceUseCase vista previa y asignación real de referencias de producto.
type ReferenceUseCase struct {
	alloc    SequenceAllocator
	products repository.ProductRepository
	grades   repository.GradeRepository
	log      *logger.Logger
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(alloc SequenceAllocator, products repository.ProductRepository, grades repository.GradeRepository, log *logger.Logger) *ReferenceUseCase {
	return &ReferenceUseCase{alloc: alloc, products: products, grades: grades, log: log.Component("reference")}
}

// PreviewReference muestra Peek+1 sin reservarlo: dos sesiones pueden ver la misma
// referencia y cada una recibe un valor distinto al confirmar.
func (uc *ReferenceUseCase) PreviewReference(ctx context.Context, collection, season, group string) (*Preview, error) {
	if err := reference.ValidateCodes(collection, season, group); err != nil {
		return nil, err
	}
	cur, err := uc.alloc.Peek(ctx, entity.SequenceKey{Collection: collection, Season: season})
	if err != nil {
		return nil, err
	}
	ref, err := reference.Compose(collection, season, group, cur+1)
	if err != nil {
		return nil, err
	}
	return &Preview{Reference: ref, Sequence: cur + 1}, nil
}

// CreateProduct asigna la secuencia de la colección y registra el producto.
func (uc *ReferenceUseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if err := reference.ValidateCodes(in.Collection, in.Season, in.Group); err != nil {
		return nil, err
	}
	if in.GradeID == "" {
		return nil, fmt.Errorf("%w: grade requerida", domain.ErrInvalidInput)
	}
	grade, err := uc.grades.GetByID(ctx, in.GradeID)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, fmt.Errorf("%w: grade %s", domain.ErrNotFound, in.GradeID)
	}
	if len(grade.Sizes) == 0 {
		return nil, domain.ErrEmptyGrade
	}

	key := entity.SequenceKey{Collection: in.Collection, Season: in.Season}
	seq, err := uc.alloc.Allocate(ctx, key)
	if err != nil {
		return nil, err
	}
	ref, err := reference.Compose(in.Collection, in.Season, in.Group, seq)
	if err != nil {
		uc.log.Error().Err(err).Str("key", key.String()).Int64("sequence", seq).Msg("referencia fuera de rango")
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Reference:   ref,
		Collection:  in.Collection,
		Season:      in.Season,
		Group:       in.Group,
		Sequence:    seq,
		GradeID:     in.GradeID,
		Description: in.Description,
		Status:      entity.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto %s: %w", ref, err)
	}
	uc.log.Info().Str("reference", ref).Msg("producto creado")
	return product, nil
}
