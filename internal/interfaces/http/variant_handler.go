package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/application/dto"
)

// VariantHandler generación y persistencia de la matriz de variantes.
type VariantHandler struct {
	builder   *catalog.MatrixBuilder
	persister *catalog.BatchPersister
}

// NewVariantHandler construye el handler.
func NewVariantHandler(builder *catalog.MatrixBuilder, persister *catalog.BatchPersister) *VariantHandler {
	return &VariantHandler{builder: builder, persister: persister}
}

// GenerateMatrix godoc
// @Summary      Generar candidatos color × tamaño con código de barras
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateMatrixRequest  true  "Grade, colores, precio y stock inicial"
// @Success      200   {array}   dto.VariantCandidateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/variants/matrix [post]
func (h *VariantHandler) GenerateMatrix(c *fiber.Ctx) error {
	var in dto.GenerateMatrixRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.GradeID == "" {
		return badRequest(c, "VALIDATION", "grade_id es requerido")
	}
	cands, err := h.builder.Build(c.UserContext(), dto.ToMatrixRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCandidateResponses(cands))
}

// PersistBatch godoc
// @Summary      Persistir un lote de variantes (resultado por ítem)
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PersistBatchRequest  true  "Referencia e ítems"
// @Success      200   {object}  dto.PersistBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/variants/batch [post]
func (h *VariantHandler) PersistBatch(c *fiber.Ctx) error {
	var in dto.PersistBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Reference == "" {
		return badRequest(c, "VALIDATION", "reference es requerido")
	}
	res, err := h.persister.PersistVariantBatch(c.UserContext(), dto.ToPersistBatchInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToPersistBatchResponse(res))
}
