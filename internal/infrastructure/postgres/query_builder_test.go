package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

func TestBuildStockCellsQuery_SinFiltros(t *testing.T) {
	query, args, err := buildStockCellsQuery(repository.StockQuery{ProductID: "p1", IncludeInactive: true})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM stock_levels sl JOIN variants v ON v.id = sl.variant_id")
	assert.Contains(t, query, "WHERE v.product_id = $1")
	assert.NotContains(t, query, "s.active")
	assert.NotContains(t, query, " IN (")
	assert.Contains(t, query, "GROUP BY sl.store_id, v.color_id, v.size_id")
	assert.Equal(t, []interface{}{"p1"}, args)
}

func TestBuildStockCellsQuery_TiendasYActivas(t *testing.T) {
	query, args, err := buildStockCellsQuery(repository.StockQuery{ProductID: "p1", StoreIDs: []string{"s1", "s2"}})
	require.NoError(t, err)

	assert.Contains(t, query, "sl.store_id IN ($2,$3)")
	assert.Contains(t, query, "s.active = $4")
	assert.Equal(t, []interface{}{"p1", "s1", "s2", true}, args)
}

func TestBuildStoreListQuery(t *testing.T) {
	query, args, err := buildStoreListQuery(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, code, name, active, created_at, updated_at FROM stores WHERE active = $1 ORDER BY code", query)
	assert.Equal(t, []interface{}{true}, args)

	query, args, err = buildStoreListQuery([]string{"s3"}, true)
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE id IN ($1)")
	assert.Equal(t, []interface{}{"s3"}, args)
}
