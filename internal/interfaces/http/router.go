package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribucion-api/internal/application/auth"
	"github.com/jhoicas/distribucion-api/internal/application/catalog"
	"github.com/jhoicas/distribucion-api/internal/application/ledger"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/application/stockquery"
	"github.com/jhoicas/distribucion-api/internal/application/transfers"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.UseCase
	TransferUC *transfers.UseCase
	OrderUC    *orders.UseCase
	LedgerUC   *ledger.UseCase
	StockUC    *stockquery.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: bodegas y productos (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)
	warehouses.Get("/:id", catalogHandler.GetWarehouse)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	// Traslados entre bodegas (protegido)
	transfersGroup := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfersGroup.Post("/", transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/:id", transferHandler.GetByID)
	transfersGroup.Put("/:id", transferHandler.Update)
	transfersGroup.Delete("/:id", transferHandler.Delete)
	transfersGroup.Post("/:id/status", transferHandler.Transition)
	transfersGroup.Get("/:id/history", transferHandler.History)

	// Órdenes (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Post("/:id/status", orderHandler.Transition)
	ordersGroup.Post("/:id/convert", orderHandler.Convert)
	ordersGroup.Get("/:id/history", orderHandler.History)

	// Libro de clientes (protegido; crear cuentas y resolver abonos es de admin)
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Post("/accounts", RequireRole(entity.RoleAdmin), ledgerHandler.CreateAccount)
	ledgerGroup.Get("/accounts", ledgerHandler.ListAccounts)
	ledgerGroup.Get("/accounts/:id", ledgerHandler.GetAccount)
	ledgerGroup.Get("/accounts/:id/transactions", ledgerHandler.ListEntries)
	ledgerGroup.Post("/transactions", ledgerHandler.Record)
	ledgerGroup.Post("/transactions/:id/confirm", RequireRole(entity.RoleAdmin), ledgerHandler.ConfirmPayment)
	ledgerGroup.Post("/transactions/:id/reject", RequireRole(entity.RoleAdmin), ledgerHandler.RejectPayment)

	// Consultas de stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/availability", stockHandler.Availability)
	stockGroup.Get("/warehouses/:warehouse_id/levels", stockHandler.Levels)
}
