package catalog_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/application/sequence"
	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/pkg/ean13"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

func fixedClock() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestComposeBarcode(t *testing.T) {
	code, err := catalog.ComposeBarcode(testPrefix, 1)
	require.NoError(t, err)
	assert.Equal(t, "7890000000017", code)
	assert.NoError(t, ean13.Validate(code))

	_, err = catalog.ComposeBarcode("78900000000", 10)
	assert.ErrorIs(t, err, domain.ErrSequenceOverflow)

	_, err = catalog.ComposeBarcode(testPrefix, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateVariantMatrix_SeisCandidatosOrdenados(t *testing.T) {
	alloc := new(mockAllocator)
	for i := int64(1); i <= 6; i++ {
		alloc.On("Allocate", mock.Anything, entity.BarcodeSequenceKey).Return(i, nil).Once()
	}
	b := catalog.NewMatrixBuilder(alloc, nil, nil, testPrefix, logger.Nop())

	out, err := b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Sizes:     []entity.Size{sizeP, sizeM, sizeG},
		Colors:    []entity.Color{colorAzul, colorPreto},
		UnitPrice: decimal.RequireFromString("59.90"),
		Seeds:     []entity.StockSeed{{StoreID: "s1", Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, out, 6)

	want := [][2]string{
		{"c-azul", "p"}, {"c-azul", "m"}, {"c-azul", "g"},
		{"c-preto", "p"}, {"c-preto", "m"}, {"c-preto", "g"},
	}
	seen := map[string]bool{}
	for i, c := range out {
		assert.Equal(t, want[i][0], c.Color.ID, "colores en el ciclo externo")
		assert.Equal(t, want[i][1], c.Size.ID, "tamaños en el ciclo interno")
		assert.NoError(t, ean13.Validate(c.Barcode))
		assert.False(t, seen[c.Barcode], "código repetido %s", c.Barcode)
		seen[c.Barcode] = true
		assert.False(t, c.Provisional)
		assert.True(t, c.UnitPrice.Equal(decimal.RequireFromString("59.90")))
		assert.Equal(t, []entity.StockSeed{{StoreID: "s1", Quantity: 2}}, c.StockSeeds)
		assert.True(t, strings.HasPrefix(c.Barcode, testPrefix))
	}
	assert.Equal(t, "7890000000017", out[0].Barcode)
	alloc.AssertNumberOfCalls(t, "Allocate", 6)
}

func TestGenerateVariantMatrix_VaciosNoConsumenSecuencia(t *testing.T) {
	alloc := new(mockAllocator)
	b := catalog.NewMatrixBuilder(alloc, nil, nil, testPrefix, logger.Nop())

	_, err := b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Colors: []entity.Color{colorAzul},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyGrade)

	_, err = b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Sizes: []entity.Size{sizeP},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyColorSet)

	alloc.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
}

func TestGenerateVariantMatrix_FallbackProvisional(t *testing.T) {
	alloc := new(mockAllocator)
	alloc.On("Allocate", mock.Anything, entity.BarcodeSequenceKey).Return(int64(1), nil).Once()
	alloc.On("Allocate", mock.Anything, entity.BarcodeSequenceKey).
		Return(int64(0), fmt.Errorf("%w: EAN/13: conexión rechazada", domain.ErrAllocationFailed))

	b := catalog.NewMatrixBuilder(alloc, nil, nil, testPrefix, logger.Nop(),
		catalog.WithOfflineFallback(true), catalog.WithClock(fixedClock))

	out, err := b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Sizes:  []entity.Size{sizeP, sizeM, sizeG},
		Colors: []entity.Color{colorAzul},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.False(t, out[0].Provisional)
	seen := map[string]bool{out[0].Barcode: true}
	for _, c := range out[1:] {
		assert.True(t, c.Provisional, "los pares restantes quedan marcados como provisionales")
		assert.True(t, strings.HasPrefix(c.Barcode, catalog.ProvisionalPrefix))
		assert.NoError(t, ean13.Validate(c.Barcode))
		assert.False(t, seen[c.Barcode])
		seen[c.Barcode] = true
	}
	// tras la primera falla no se vuelve a consultar el contador
	alloc.AssertNumberOfCalls(t, "Allocate", 2)
}

func TestGenerateVariantMatrix_SinFallbackPropagaError(t *testing.T) {
	alloc := new(mockAllocator)
	alloc.On("Allocate", mock.Anything, entity.BarcodeSequenceKey).
		Return(int64(0), fmt.Errorf("%w: EAN/13", domain.ErrAllocationFailed))
	b := catalog.NewMatrixBuilder(alloc, nil, nil, testPrefix, logger.Nop())

	out, err := b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Sizes:  []entity.Size{sizeP},
		Colors: []entity.Color{colorAzul},
	})
	assert.ErrorIs(t, err, domain.ErrAllocationFailed)
	assert.Nil(t, out)
}

func TestGenerateVariantMatrix_OtroErrorAbortaAunConFallback(t *testing.T) {
	alloc := new(mockAllocator)
	alloc.On("Allocate", mock.Anything, entity.BarcodeSequenceKey).Return(int64(0), context.Canceled)
	b := catalog.NewMatrixBuilder(alloc, nil, nil, testPrefix, logger.Nop(), catalog.WithOfflineFallback(true))

	out, err := b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Sizes:  []entity.Size{sizeP},
		Colors: []entity.Color{colorAzul},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestGenerateVariantMatrix_Overflow(t *testing.T) {
	alloc := new(mockAllocator)
	alloc.On("Allocate", mock.Anything, entity.BarcodeSequenceKey).Return(int64(100000), nil)
	b := catalog.NewMatrixBuilder(alloc, nil, nil, testPrefix, logger.Nop(), catalog.WithOfflineFallback(true))

	_, err := b.GenerateVariantMatrix(context.Background(), catalog.GenerateMatrixInput{
		Sizes:  []entity.Size{sizeP},
		Colors: []entity.Color{colorAzul},
	})
	assert.ErrorIs(t, err, domain.ErrSequenceOverflow)
}

func TestBuild_ResuelveGradeYColores(t *testing.T) {
	s, _ := seededStore(t)
	alloc := sequence.NewAllocator(s, logger.Nop())
	b := catalog.NewMatrixBuilder(alloc, s.Grades(), s, testPrefix, logger.Nop())

	out, err := b.Build(context.Background(), catalog.MatrixRequest{
		GradeID:   "g1",
		ColorIDs:  []string{"c-preto", "c-azul"},
		UnitPrice: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	require.Len(t, out, 6)
	assert.Equal(t, "c-preto", out[0].Color.ID, "respeta el orden de selección de colores")
	assert.Equal(t, "g", out[2].Size.ID)

	cur, _ := s.Current(context.Background(), entity.BarcodeSequenceKey)
	assert.Equal(t, int64(6), cur)
}

func TestBuild_GradeOColorInexistente(t *testing.T) {
	s, _ := seededStore(t)
	alloc := new(mockAllocator)
	b := catalog.NewMatrixBuilder(alloc, s.Grades(), s, testPrefix, logger.Nop())
	ctx := context.Background()

	_, err := b.Build(ctx, catalog.MatrixRequest{GradeID: "nope", ColorIDs: []string{"c-azul"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = b.Build(ctx, catalog.MatrixRequest{GradeID: "g1", ColorIDs: []string{"c-verde"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = b.Build(ctx, catalog.MatrixRequest{GradeID: "g1"})
	assert.ErrorIs(t, err, domain.ErrEmptyColorSet)

	alloc.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything)
}
