package handlers

import (
	"github.com/finlake/invoice_pipeline/internal/core/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the read-only reporting routes.
func RegisterRoutes(r *gin.Engine, svc *services.ServiceProvider) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")
	registerReportRoutes(v1, svc.Reporting)
}
