package sequence_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/internal/application/sequence"
	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/memory"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Current(ctx context.Context, key entity.SequenceKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Increment(ctx context.Context, key entity.SequenceKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

var refKey = entity.SequenceKey{Collection: "25", Season: "01"}

func TestAllocate_ConcurrenteDevuelveUnoAN(t *testing.T) {
	const n = 200
	alloc := sequence.NewAllocator(memory.New(), logger.Nop())

	var wg sync.WaitGroup
	values := make([]int64, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			values[i], errs[i] = alloc.Allocate(context.Background(), refKey)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		assert.Equal(t, int64(i+1), v)
	}
}

func TestPeek_NoModificaElContador(t *testing.T) {
	alloc := sequence.NewAllocator(memory.New(), logger.Nop())
	ctx := context.Background()

	v, err := alloc.Peek(ctx, refKey)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v, "una llave nunca usada devuelve 0")

	_, err = alloc.Allocate(ctx, refKey)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		v, err = alloc.Peek(ctx, refKey)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)
	}

	next, err := alloc.Allocate(ctx, refKey)
	require.NoError(t, err)
	assert.Equal(t, v+1, next, "la siguiente asignación es Peek+1")
}

func TestAllocate_ErrorDelStoreEsAllocationFailed(t *testing.T) {
	store := new(mockStore)
	store.On("Increment", mock.Anything, refKey).Return(int64(0), errors.New("conexión rechazada"))
	alloc := sequence.NewAllocator(store, logger.Nop())

	_, err := alloc.Allocate(context.Background(), refKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAllocationFailed)
	assert.Contains(t, err.Error(), "25/01")
}

func TestPeek_ErrorDelStoreEsAllocationFailed(t *testing.T) {
	store := new(mockStore)
	store.On("Current", mock.Anything, entity.BarcodeSequenceKey).Return(int64(0), errors.New("timeout"))
	alloc := sequence.NewAllocator(store, logger.Nop())

	_, err := alloc.Peek(context.Background(), entity.BarcodeSequenceKey)
	assert.ErrorIs(t, err, domain.ErrAllocationFailed)
}

func TestAllocate_ContextoCanceladoNoIncrementa(t *testing.T) {
	store := new(mockStore)
	alloc := sequence.NewAllocator(store, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := alloc.Allocate(ctx, refKey)
	assert.ErrorIs(t, err, context.Canceled)
	store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
}

type countingMetrics struct {
	ok, failed int
}

func (m *countingMetrics) ObserveAllocation(_ entity.SequenceKey, err error) {
	if err != nil {
		m.failed++
		return
	}
	m.ok++
}

func TestAllocate_RegistraMetricas(t *testing.T) {
	m := &countingMetrics{}
	alloc := sequence.NewAllocator(memory.New(), logger.Nop(), sequence.WithMetrics(m))
	_, err := alloc.Allocate(context.Background(), refKey)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ok)
	assert.Equal(t, 0, m.failed)
}
