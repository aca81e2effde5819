// Package router wires the HTTP routes onto a gin engine.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"printshop-backend/internal/handlers"
	"printshop-backend/internal/logging"
	"printshop-backend/internal/middleware"
	"printshop-backend/internal/services"
)

// JSONBodyLimit caps every non-multipart request body.
const JSONBodyLimit = 50 << 20

// multipartSlack covers form fields and part headers on top of the files.
const multipartSlack = 1 << 20

type Deps struct {
	Orders    *services.OrderService
	Authority handlers.SessionAuthority
	Limits    handlers.UploadLimits
	DistDir   string
	Logger    *slog.Logger
	// Swagger mounts the API docs at /swagger when set.
	Swagger bool
}

func SetupRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := gin.New()
	router.Use(logging.GinLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.BodyLimit(JSONBodyLimit, multipartLimit(d.Limits)))

	if d.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminHandler := handlers.NewAdminHandler(d.Authority, logger)
	ordersHandler := handlers.NewOrdersHandler(d.Orders, d.Limits, logger)
	filesHandler := handlers.NewFilesHandler(d.Orders, logger)

	requireSession := middleware.RequireSession(d.Authority, logger)

	api := router.Group("/api")

	api.GET("/health", handlers.HealthHandler)

	// Admin session
	api.POST("/admin/login", adminHandler.Login)
	api.POST("/admin/verify", adminHandler.Verify)

	// Public order routes
	api.POST("/orders", ordersHandler.SubmitOrder)
	api.GET("/orders/:orderId", ordersHandler.GetOrder)
	api.GET("/files/:filename", filesHandler.Download)

	// Admin-only routes
	api.GET("/orders", requireSession, ordersHandler.ListOrders)
	api.PUT("/orders/:orderId/status", requireSession, ordersHandler.UpdateStatus)
	api.DELETE("/orders", requireSession, ordersHandler.ClearOrders)
	api.GET("/export/orders.csv", requireSession, ordersHandler.ExportCSV)
	api.GET("/export/orders.xlsx", requireSession, ordersHandler.ExportXLSX)

	router.NoRoute(handlers.SPAHandler(d.DistDir))

	return router
}

func multipartLimit(l handlers.UploadLimits) int64 {
	files := int64(l.MaxFiles)
	if files <= 0 {
		files = 1
	}
	return l.MaxFileBytes*files + multipartSlack
}
