// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"booktrader/internal/delivery/http/middleware"
	"booktrader/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	QueryHandler        *handler.QueryHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	queryHandler        *handler.QueryHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		queryHandler:        params.QueryHandler,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// The one query endpoint: every read and mutation goes through it as a
	// named operation in the batch body.
	e.POST("/query", r.queryHandler.Execute)
}
