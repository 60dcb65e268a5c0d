package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/internal/application/dto"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/inventory"
)

func TestVariantItemRequest_Alias(t *testing.T) {
	cases := map[string]string{
		"canónico": `{"color_id":"c1","size_id":"m","barcode":"7890000000017","unit_price":"59.90"}`,
		"portugués": `{"cor_id":"c1","tamanho_id":"m","ean":"7890000000017","preco":59.90}`,
		"codigo":    `{"cor_id":"c1","tamanho_id":"m","codigo_barras":"7890000000017","preco":"59.9"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var r dto.VariantItemRequest
			require.NoError(t, json.Unmarshal([]byte(body), &r))
			assert.Equal(t, "c1", r.ColorID)
			assert.Equal(t, "m", r.SizeID)
			assert.Equal(t, "7890000000017", r.Barcode)
			assert.True(t, r.UnitPrice.Equal(decimal.RequireFromString("59.90")))
		})
	}
}

func TestVariantItemRequest_CanonicoTienePrioridad(t *testing.T) {
	var r dto.VariantItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"color_id":"c1","cor_id":"c2","unit_price":1,"preco":2}`), &r))
	assert.Equal(t, "c1", r.ColorID)
	assert.True(t, r.UnitPrice.Equal(decimal.NewFromInt(1)))
}

func TestPersistBatchRequest_ItemsConAlias(t *testing.T) {
	body := `{"reference":"25-01-10001","items":[{"cor_id":"c1","tamanho_id":"p","ean":"7890000000017","provisional":true,"seeds":[{"store_id":"s1","quantity":3}]}]}`
	var req dto.PersistBatchRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in := dto.ToPersistBatchInput(req)
	require.Len(t, in.Items, 1)
	assert.Equal(t, "25-01-10001", in.ProductReference)
	assert.Equal(t, "c1", in.Items[0].Color.ID)
	assert.True(t, in.Items[0].Provisional)
	assert.Equal(t, []entity.StockSeed{{StoreID: "s1", Quantity: 3}}, in.Items[0].StockSeeds)
}

func TestToStockMatrixResponse_FormaAnidada(t *testing.T) {
	m := inventory.BuildStockMatrix("25-01-10001",
		[]entity.Store{{ID: "s1", Code: "LJ01"}, {ID: "s2", Code: "LJ02"}},
		[]entity.Color{{ID: "c1", Code: "AZ"}},
		[]entity.Size{{ID: "p", Label: "P"}, {ID: "m", Label: "M"}},
		[]entity.StockCell{{StoreID: "s1", ColorID: "c1", SizeID: "m", Quantity: 4}},
	)
	out := dto.ToStockMatrixResponse(m)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, "25-01-10001", generic["referencia"])
	assert.Equal(t, false, generic["vazio"])

	require.Len(t, out.Matrix.PorLoja, 2)
	s1 := out.Matrix.PorLoja[0]
	assert.Equal(t, "s1", s1.LojaID)
	assert.Equal(t, int64(4), s1.TotalLoja)
	require.Len(t, s1.Cores, 1)
	assert.Equal(t, map[string]int64{"p": 0, "m": 4}, s1.Cores[0].Tamanhos)
	assert.Equal(t, int64(4), s1.Cores[0].TotalCor)

	s2 := out.Matrix.PorLoja[1]
	assert.Equal(t, int64(0), s2.TotalLoja)
	assert.Equal(t, map[string]int64{"p": 0, "m": 0}, s2.Cores[0].Tamanhos)

	assert.Equal(t, map[string]int64{"c1": 4}, out.Matrix.Totais.PorCor)
	assert.Equal(t, map[string]int64{"p": 0, "m": 4}, out.Matrix.Totais.PorTamanho)
	assert.Equal(t, int64(4), out.Matrix.Totais.Geral)
}
