package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-matrix-api/internal/application/dto"
	"github.com/jhoicas/sku-matrix-api/internal/application/inventory"
)

// InventoryHandler consulta de stock por referencia.
type InventoryHandler struct {
	uc *inventory.StockMatrixUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockMatrixUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// StockMatrix godoc
// @Summary      Matriz de stock tienda × color × tamaño
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        reference         query  string  true   "Referencia"
// @Param        store_ids         query  string  false  "IDs de tienda separados por coma"
// @Param        include_inactive  query  bool    false  "Incluir tiendas inactivas"
// @Success      200  {object}  dto.StockMatrixResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-matrix [get]
func (h *InventoryHandler) StockMatrix(c *fiber.Ctx) error {
	ref := strings.TrimSpace(c.Query("reference"))
	if ref == "" {
		return badRequest(c, "VALIDATION", "reference es requerido")
	}
	m, err := h.uc.GetStockMatrix(c.UserContext(), inventory.StockMatrixQuery{
		Reference:       ref,
		StoreIDs:        splitIDs(c.Query("store_ids")),
		IncludeInactive: c.QueryBool("include_inactive", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStockMatrixResponse(m))
}

// splitIDs "a, b,,c" -> [a b c]; vacío -> nil (todas las tiendas).
func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
