// Package router wires the HTTP routes to their handlers and
// middleware. The layout mirrors the authorization model: open
// session endpoints, an admin-only group for owned resources, a
// shared group for orders, and a supplier-only status route.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/config"
	"github.com/jitsupply/order-api/internal/handler"
	"github.com/jitsupply/order-api/internal/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Supplier *handler.SupplierHandler
	Order    *handler.OrderHandler
	Kanban   *handler.KanbanHandler
	User     *handler.UserHandler
}

// Register attaches all routes to the Echo instance. The rdb client
// may be nil, in which case the auth endpoints run unlimited.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Session endpoints: open, but rate-limited against credential
	// stuffing.
	authGroup := e.Group("/api/auth", middleware.RateLimit(rlCfg, rdb))
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/authenticate", h.Auth.Authenticate)
	authGroup.POST("/authenticate-supplier", h.Auth.AuthenticateSupplier)
	authGroup.POST("/refresh", h.Auth.Refresh)

	// Admin-owned resources.
	admin := e.Group("/api",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(auth.RoleAdmin),
	)
	admin.GET("/suppliers", h.Supplier.List)
	admin.POST("/suppliers", h.Supplier.Create)
	admin.GET("/suppliers/:id", h.Supplier.Get)
	admin.PUT("/suppliers/:id", h.Supplier.Update)
	admin.DELETE("/suppliers/:id", h.Supplier.Delete)

	admin.GET("/kanban/cards", h.Kanban.List)
	admin.POST("/kanban/cards", h.Kanban.Create)
	admin.GET("/kanban/cards/:id", h.Kanban.Get)
	admin.PUT("/kanban/cards/:id", h.Kanban.Update)
	admin.DELETE("/kanban/cards/:id", h.Kanban.Delete)

	admin.POST("/orders", h.Order.Create)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Delete)

	// Orders are visible to both roles; the handler decides per row.
	shared := e.Group("/api",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(auth.RoleAdmin, auth.RoleSupplier),
	)
	shared.GET("/orders", h.Order.List)
	shared.GET("/orders/:id", h.Order.Get)
	shared.GET("/users/:id", h.User.Get)

	// Status mutation belongs to the assigned supplier alone.
	supplier := e.Group("/api",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(auth.RoleSupplier),
	)
	supplier.PUT("/orders/:id", h.Order.UpdateStatus)
}
