package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/memory"
)

const testPrefix = "7890000"

// mockAllocator implementa catalog.SequenceAllocator con testify/mock.
type mockAllocator struct{ mock.Mock }

func (m *mockAllocator) Peek(ctx context.Context, key entity.SequenceKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAllocator) Allocate(ctx context.Context, key entity.SequenceKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

var (
	sizeP = entity.Size{ID: "p", GradeID: "g1", Label: "P", Position: 1}
	sizeM = entity.Size{ID: "m", GradeID: "g1", Label: "M", Position: 2}
	sizeG = entity.Size{ID: "g", GradeID: "g1", Label: "G", Position: 3}

	colorAzul  = entity.Color{ID: "c-azul", Code: "AZ", Description: "Azul"}
	colorPreto = entity.Color{ID: "c-preto", Code: "PR", Description: "Preto"}
)

// seededStore devuelve un store en memoria con grade, colores, tiendas y el producto 25-01-10001.
func seededStore(t *testing.T) (*memory.Store, *entity.Product) {
	t.Helper()
	s := memory.New()
	s.AddGrade(entity.Grade{ID: "g1", Name: "PMG", Sizes: []entity.Size{sizeP, sizeM, sizeG}})
	s.AddColor(colorAzul)
	s.AddColor(colorPreto)
	s.AddStore(entity.Store{ID: "s1", Code: "LJ01", Name: "Centro", Active: true})
	s.AddStore(entity.Store{ID: "s2", Code: "LJ02", Name: "Shopping", Active: true})

	p := &entity.Product{Reference: "25-01-10001", Collection: "25", Season: "01", Group: "10", Sequence: 1, GradeID: "g1", Description: "Camiseta básica"}
	require.NoError(t, s.Create(context.Background(), p))
	return s, p
}

func barcode(t *testing.T, seq int64) string {
	t.Helper()
	code, err := catalog.ComposeBarcode(testPrefix, seq)
	require.NoError(t, err)
	return code
}

func candidate(t *testing.T, color entity.Color, size entity.Size, seq int64) entity.VariantCandidate {
	return entity.VariantCandidate{
		Color:      color,
		Size:       size,
		Barcode:    barcode(t, seq),
		UnitPrice:  decimal.RequireFromString("59.90"),
		StockSeeds: []entity.StockSeed{{StoreID: "s1", Quantity: 5}},
	}
}
