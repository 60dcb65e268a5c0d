// Package cache implementa el almacén de contadores sobre Redis (INCR atómico).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/sku-matrix-api/internal/application/sequence"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/pkg/config"
)

var _ sequence.Store = (*SequenceStore)(nil)

const defaultPrefix = "sku:"

// SequenceStore contadores como claves enteras: {prefix}seq:{colección}:{temporada}.
type SequenceStore struct {
	client *redis.Client
	prefix string
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewSequenceStore construye el store con un cliente existente.
func NewSequenceStore(client *redis.Client, prefix string) *SequenceStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SequenceStore{client: client, prefix: prefix}
}

// Key devuelve la clave Redis del contador.
func (s *SequenceStore) Key(key entity.SequenceKey) string {
	return fmt.Sprintf("%sseq:%s:%s", s.prefix, key.Collection, key.Season)
}

// Current lee el contador sin modificarlo; una clave inexistente vale 0.
func (s *SequenceStore) Current(ctx context.Context, key entity.SequenceKey) (int64, error) {
	v, err := s.client.Get(ctx, s.Key(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// Increment usa INCR: un solo comando, atómico en el servidor.
func (s *SequenceStore) Increment(ctx context.Context, key entity.SequenceKey) (int64, error) {
	v, err := s.client.Incr(ctx, s.Key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return v, nil
}

// Close cierra el cliente.
func (s *SequenceStore) Close() error {
	return s.client.Close()
}
