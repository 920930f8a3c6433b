package handlers

import (
	"net/http"

	portssvc "github.com/finlake/invoice_pipeline/internal/core/ports/services"
	"github.com/finlake/invoice_pipeline/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for the reporting-tier aggregates.
// The surface is strictly read-only; the pipeline is the only writer.
type reportHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportHandler creates a new reportHandler
func newReportHandler(rs portssvc.ReportingSvc) *reportHandler {
	return &reportHandler{
		reportingService: rs,
	}
}

// registerReportRoutes registers routes related to reporting aggregates
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportHandler(reportingService)

	reportGroup := rg.Group("/reports")
	{
		reportGroup.GET("/top-customers", h.getTopCustomers)
		reportGroup.GET("/status-distribution", h.getStatusDistribution)
		reportGroup.GET("/department-revenue", h.getDepartmentRevenue)
		reportGroup.GET("/average-payment", h.getAveragePayment)
		reportGroup.GET("/daily-totals", h.getDailyTotals)
	}
}

type topCustomersQuery struct {
	Limit int `form:"limit,default=5" binding:"min=1,max=100"`
}

func (h *reportHandler) getTopCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query topCustomersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	resp, err := h.reportingService.TopCustomers(c.Request.Context(), query.Limit)
	if err != nil {
		logger.Error("Failed to generate top customers report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportHandler) getStatusDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.InvoiceStatusDistribution(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate status distribution report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportHandler) getDepartmentRevenue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.RevenueByDepartment(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate department revenue report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportHandler) getAveragePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.AveragePayment(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate average payment report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportHandler) getDailyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	resp, err := h.reportingService.DailyPaymentTotals(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate daily totals report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
