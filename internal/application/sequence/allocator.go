package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// Allocator entrega valores únicos y crecientes por llave. Toda mutación pasa por
// Allocate; el paso atómico lo resuelve el Store inyectado.
type Allocator struct {
	store   Store
	log     *logger.Logger
	metrics Metrics
	timeout time.Duration
}

// Option configura el Allocator.
type Option func(*Allocator)

// WithMetrics registra cada asignación en m.
func WithMetrics(m Metrics) Option {
	return func(a *Allocator) { a.metrics = m }
}

// WithTimeout limita cada llamada al Store (0 = sin límite propio).
func WithTimeout(d time.Duration) Option {
	return func(a *Allocator) { a.timeout = d }
}

// NewAllocator construye el servicio de secuencias.
func NewAllocator(store Store, log *logger.Logger, opts ...Option) *Allocator {
	a := &Allocator{store: store, log: log.Component("sequence")}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Peek devuelve el valor actual sin modificarlo; la próxima asignación será Peek+1.
func (a *Allocator) Peek(ctx context.Context, key entity.SequenceKey) (int64, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	v, err := a.store.Current(ctx, key)
	if err != nil {
		a.log.Error().Err(err).Str("key", key.String()).Msg("peek de secuencia")
		return 0, fmt.Errorf("%w: peek %s: %v", domain.ErrAllocationFailed, key, err)
	}
	return v, nil
}

// Allocate incrementa el contador y devuelve el nuevo valor.
// Un contexto ya cancelado se rechaza antes del paso atómico.
func (a *Allocator) Allocate(ctx context.Context, key entity.SequenceKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("allocate %s: %w", key, err)
	}
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	v, err := a.store.Increment(ctx, key)
	if a.metrics != nil {
		a.metrics.ObserveAllocation(key, err)
	}
	if err != nil {
		a.log.Error().Err(err).Str("key", key.String()).Msg("asignación de secuencia")
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrAllocationFailed, key, err)
	}
	a.log.Debug().Str("key", key.String()).Int64("value", v).Msg("secuencia asignada")
	return v, nil
}

func (a *Allocator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.timeout)
}
