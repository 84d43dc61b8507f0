// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/andresuchdata/retail-ops/internal/api/handlers"
	"github.com/andresuchdata/retail-ops/internal/api/middleware"
	"github.com/andresuchdata/retail-ops/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(svc *service.Service, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	dashboardHandler := handlers.NewDashboardHandler(svc)
	detailsHandler := handlers.NewDetailsHandler(svc)

	router.GET("/health", dashboardHandler.Health)

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/dashboard", dashboardHandler.GetDashboard)
		apiGroup.GET("/strategy", dashboardHandler.GetStrategy)
		apiGroup.POST("/snapshot/reload", dashboardHandler.ReloadSnapshot)

		actionsGroup := apiGroup.Group("/actions")
		{
			actionsGroup.GET("", dashboardHandler.GetActions)
			actionsGroup.GET("/stock_status", dashboardHandler.GetStockStatus)
		}

		apiGroup.GET("/skus", detailsHandler.GetSKUs)
		apiGroup.GET("/skus/:sku_id", detailsHandler.GetSKU)
		apiGroup.GET("/suppliers", detailsHandler.GetSuppliers)
		apiGroup.GET("/suppliers/:supplier_id", detailsHandler.GetSupplier)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
