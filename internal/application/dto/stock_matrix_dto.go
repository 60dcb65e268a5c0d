package dto

// Forma de la respuesta de matriz de stock consumida por el front (nombres en portugués).

// StoreAxis tienda del eje.
type StoreAxis struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
	Ativa  bool   `json:"ativa"`
}

// ColorAxis color del eje.
type ColorAxis struct {
	ID        string `json:"id"`
	Codigo    string `json:"codigo"`
	Descricao string `json:"descricao"`
}

// SizeAxis tamaño del eje.
type SizeAxis struct {
	ID      string `json:"id"`
	Rotulo  string `json:"rotulo"`
	Posicao int    `json:"posicao"`
}

// StockAxes ejes de la matriz.
type StockAxes struct {
	Lojas    []StoreAxis `json:"lojas"`
	Cores    []ColorAxis `json:"cores"`
	Tamanhos []SizeAxis  `json:"tamanhos"`
}

// StockColorRow fila de un color dentro de una tienda; Tamanhos va por ID de tamaño.
type StockColorRow struct {
	CorID    string           `json:"cor_id"`
	Tamanhos map[string]int64 `json:"tamanhos"`
	TotalCor int64            `json:"total_cor"`
}

// StockStoreBlock bloque de una tienda.
type StockStoreBlock struct {
	LojaID    string          `json:"loja_id"`
	Cores     []StockColorRow `json:"cores"`
	TotalLoja int64           `json:"total_loja"`
}

// StockTotalsResponse totales por color, por tamaño y general.
type StockTotalsResponse struct {
	PorCor     map[string]int64 `json:"por_cor"`
	PorTamanho map[string]int64 `json:"por_tamanho"`
	Geral      int64            `json:"geral"`
}

// StockMatrixBody cuerpo de la matriz.
type StockMatrixBody struct {
	PorLoja []StockStoreBlock   `json:"por_loja"`
	Totais  StockTotalsResponse `json:"totais"`
}

// StockMatrixResponse salida de GET /api/stock-matrix.
type StockMatrixResponse struct {
	Referencia string          `json:"referencia"`
	Eixos      StockAxes       `json:"eixos"`
	Matrix     StockMatrixBody `json:"matrix"`
	Vazio      bool            `json:"vazio"`
}
