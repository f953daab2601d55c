package routes

import (
	"hera_backend/internal/handlers"
	"hera_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts the API under /api and the Swagger UI.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.CompanyHandler.RegisterRoutes(api)
		appHandlers.CompanyHandler.RegisterAnalyzeRoutes(api)
		appHandlers.PortfolioHandler.RegisterRoutes(api)
		appHandlers.NessieHandler.RegisterRoutes(api)
		appHandlers.PlaidHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.CommunityHandler.RegisterRoutes(api)
		appHandlers.ResolveHandler.RegisterRoutes(api)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("HTTP routes registered", "prefix", "/api")
}
