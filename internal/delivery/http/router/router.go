// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware injected by Fx.
type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	ItemHandler    *handler.ItemHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	itemHandler    *handler.ItemHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		itemHandler:    params.ItemHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Item routes. Reads are public; mutations require a bearer token.
	itemGroup := e.Group("/items")
	{
		itemGroup.GET("/search/:option/:value", r.itemHandler.Search)
		itemGroup.GET("/:itemId", r.itemHandler.Get)
		itemGroup.GET("/:itemId/qrcode", r.itemHandler.QRCode)

		itemGroup.POST("", r.itemHandler.Create, r.authMiddleware.Authenticate)
		itemGroup.PUT("/:itemId", r.itemHandler.Update, r.authMiddleware.Authenticate)
		itemGroup.DELETE("/:itemId", r.itemHandler.Delete, r.authMiddleware.Authenticate)
	}
}
