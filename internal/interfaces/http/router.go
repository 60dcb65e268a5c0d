package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/application/inventory"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/metrics"
	"github.com/jhoicas/sku-matrix-api/pkg/jwt"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	References  *catalog.ReferenceUseCase
	Labels      *catalog.LabelsUseCase
	Matrix      *catalog.MatrixBuilder
	Persister   *catalog.BatchPersister
	StockMatrix *inventory.StockMatrixUseCase
	Metrics     *metrics.Metrics // opcional
	Logger      *logger.Logger   // opcional
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole())
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	productHandler := NewProductHandler(deps.References, deps.Labels)
	api.Get("/references/preview", productHandler.PreviewReference)
	api.Post("/products", writers, productHandler.Create)
	api.Get("/products/:reference/labels.pdf", productHandler.Labels)

	variantHandler := NewVariantHandler(deps.Matrix, deps.Persister)
	api.Post("/variants/matrix", variantHandler.GenerateMatrix)
	api.Post("/variants/batch", writers, variantHandler.PersistBatch)

	inventoryHandler := NewInventoryHandler(deps.StockMatrix)
	api.Get("/stock-matrix", inventoryHandler.StockMatrix)
}
