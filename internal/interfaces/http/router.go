package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/analytics"
	"github.com/jhoicas/warehouse-api/internal/application/billing"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	StockUC     *inventory.StockUseCase
	Compat      *inventory.CompatibilityValidator
	ItemGuard   *inventory.OrderItemGuard
	OrderUC     *orders.OrderUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	AnalyticsUC *analytics.AnalyticsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies (sin tenant: es el recurso que lo define)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Analytics (empresa opcional)
	reports := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	reports.Get("/best-selling-products", analyticsHandler.BestSelling)
	reports.Get("/highest-stock-products", analyticsHandler.HighestStock)
	reports.Get("/top-customers", analyticsHandler.TopCustomers)
	reports.Get("/summary", analyticsHandler.Summary)

	// Rutas con tenant (X-Company-ID)
	tenant := api.Group("/", TenantMiddleware())

	customers := tenant.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	products := tenant.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/types/count", productHandler.CountByType)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock", productHandler.Stock)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouses := tenant.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	orderGroup := tenant.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ItemGuard, deps.Compat)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Get("/:id/items", orderHandler.Items)
	orderGroup.Get("/:id/compatibility", orderHandler.Compatibility)
	orderGroup.Put("/:id", orderHandler.Update)
	orderGroup.Delete("/:id", orderHandler.Delete)

	items := tenant.Group("/order-items")
	itemHandler := NewOrderItemHandler(deps.ItemGuard)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	invoices := tenant.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
}
