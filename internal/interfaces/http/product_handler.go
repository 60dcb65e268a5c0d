package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/application/dto"
)

// ProductHandler referencias y productos (protegido).
type ProductHandler struct {
	refs   *catalog.ReferenceUseCase
	labels *catalog.LabelsUseCase
}

// NewProductHandler construye el handler. labels puede ser nil si no se sirven etiquetas.
func NewProductHandler(refs *catalog.ReferenceUseCase, labels *catalog.LabelsUseCase) *ProductHandler {
	return &ProductHandler{refs: refs, labels: labels}
}

// PreviewReference godoc
// @Summary      Vista previa de la próxima referencia (no reserva)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        collection  query  string  true  "Colección (2 dígitos)"
// @Param        season      query  string  true  "Temporada (2 dígitos)"
// @Param        group       query  string  true  "Grupo (2 dígitos)"
// @Success      200  {object}  dto.ReferencePreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/references/preview [get]
func (h *ProductHandler) PreviewReference(c *fiber.Ctx) error {
	collection, season, group := c.Query("collection"), c.Query("season"), c.Query("group")
	if collection == "" || season == "" || group == "" {
		return badRequest(c, "VALIDATION", "collection, season y group son requeridos")
	}
	out, err := h.refs.PreviewReference(c.UserContext(), collection, season, group)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReferencePreviewResponse{Reference: out.Reference, Sequence: out.Sequence})
}

// Create godoc
// @Summary      Crear producto asignando la referencia
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.GradeID == "" {
		return badRequest(c, "VALIDATION", "grade_id es requerido")
	}
	p, err := h.refs.CreateProduct(c.UserContext(), catalog.CreateProductInput{
		Collection:  in.Collection,
		Season:      in.Season,
		Group:       in.Group,
		GradeID:     in.GradeID,
		Description: in.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(p))
}

// Labels godoc
// @Summary      Etiquetas con código de barras de las variantes (PDF)
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        reference  path  string  true  "Referencia CC-SS-GGNNN"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{reference}/labels.pdf [get]
func (h *ProductHandler) Labels(c *fiber.Ctx) error {
	if h.labels == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "etiquetas no disponibles"})
	}
	ref := c.Params("reference")
	if ref == "" {
		return badRequest(c, "MISSING_REFERENCE", "reference es requerido")
	}
	pdf, err := h.labels.RenderLabels(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+ref+`-etiquetas.pdf"`)
	return c.Send(pdf)
}
