package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-backoffice/internal/application/analytics"
	"github.com/jhoicas/marketplace-backoffice/internal/application/auth"
	"github.com/jhoicas/marketplace-backoffice/internal/application/usecase"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	OrderUC    *usecase.OrderUseCase
	MessageUC  *usecase.ContactMessageUseCase
	UserUC     *usecase.UserUseCase
	StatsUC    *analytics.StatsUseCase
	OIDC       FederatedProvider // nil = sin /api/login, /api/callback, /api/logout
	Session    SessionCookieConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.AuthUC, deps.Session.Name)
	guard := NewGuard(deps.AuthUC)
	supplierOnly := guard.Require(entity.RoleSupplier)
	adminOnly := guard.Require(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.OIDC, deps.Session)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/user", authn, authHandler.CurrentUser)
	if deps.OIDC != nil {
		api.Get("/login", authHandler.FederatedLogin)
		api.Get("/callback", authHandler.FederatedCallback)
		api.Get("/logout", authHandler.FederatedLogout)
	}

	// Público
	catalogHandler := NewCatalogHandler(deps.CategoryUC)
	messageHandler := NewMessageHandler(deps.MessageUC)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/contact", messageHandler.Create)

	productHandler := NewProductHandler(deps.ProductUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	statsHandler := NewStatsHandler(deps.StatsUC)
	userHandler := NewUserHandler(deps.UserUC)

	// Proveedor
	supplier := api.Group("/supplier", authn)
	supplier.Get("/products", supplierOnly(productHandler.ListMine))
	supplier.Post("/products", supplierOnly(productHandler.Create))
	supplier.Put("/products/:id", supplierOnly(productHandler.Update))
	supplier.Delete("/products/:id", supplierOnly(productHandler.Delete))
	supplier.Get("/stats", supplierOnly(statsHandler.Supplier))
	supplier.Get("/orders", supplierOnly(orderHandler.ListMine))

	// Admin
	admin := api.Group("/admin", authn)
	admin.Get("/stats", adminOnly(statsHandler.Admin))
	admin.Get("/users", adminOnly(userHandler.List))
	admin.Get("/products", adminOnly(productHandler.ListAll))
	admin.Get("/orders", adminOnly(orderHandler.ListAll))
	admin.Get("/messages", adminOnly(messageHandler.List))
	admin.Put("/messages/:id/status", adminOnly(messageHandler.UpdateStatus))
	admin.Put("/orders/:id/status", adminOnly(orderHandler.UpdateStatus))
}
