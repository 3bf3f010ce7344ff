package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/salon/backend/internal/application/report"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/interfaces/http/dto"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles financial report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	read := middleware.RequireCapability(string(identity.CapReportsRead))
	{
		reports.GET("/financial-summary", read, h.FinancialSummary)
	}
}

// FinancialSummary godoc
// @Summary      Get the monthly financial summary
// @Description  Aggregates revenue, expenses and payroll cost for a period with the previous month's net result for comparison
// @Tags         reports
// @Produce      json
// @Param        year query int true "Period year"
// @Param        month query int true "Period month"
// @Success      200 {object} dto.Response{data=report.FinancialSummary}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/financial-summary [get]
func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.FinancialSummary(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
