package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	exportapp "github.com/salon/backend/internal/application/export"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/interfaces/http/dto"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// ExportHandler handles file export endpoints
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.Service
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *exportapp.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers the export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports", middleware.RequireCapability(string(identity.CapExportsRun)))
	{
		exports.GET("/salary-records/:id/receipt", h.SalaryReceipt)
		exports.GET("/invoices/:id/pdf", h.InvoicePDF)
		exports.GET("/gift-cards/workbook", h.GiftCardsWorkbook)
		exports.GET("/expenses/workbook", h.ExpensesWorkbook)
		exports.GET("/payroll/workbook", h.PayrollWorkbook)
		exports.GET("/monthly-bundle", h.MonthlyBundle)
	}
}

// sendFile writes a generated file as an attachment download
func (h *ExportHandler) sendFile(c *gin.Context, file *exportapp.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// SalaryReceipt godoc
// @Summary      Download a salary receipt PDF
// @Description  Renders the payout of one salary record; variant selects the single or global formula
// @Tags         exports
// @Produce      application/pdf
// @Param        id path string true "Record ID" format(uuid)
// @Param        variant query string false "Payout variant" Enums(single, global) default(single)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /exports/salary-records/{id}/receipt [get]
func (h *ExportHandler) SalaryReceipt(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	file, err := h.exportService.SalaryReceipt(c.Request.Context(), id, c.Query("variant"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendFile(c, file)
}

// InvoicePDF godoc
// @Summary      Download an invoice PDF
// @Tags         exports
// @Produce      application/pdf
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /exports/invoices/{id}/pdf [get]
func (h *ExportHandler) InvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	file, err := h.exportService.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendFile(c, file)
}

// GiftCardsWorkbook godoc
// @Summary      Download the gift card workbook
// @Description  Exports every gift card with its date-derived status to xlsx
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /exports/gift-cards/workbook [get]
func (h *ExportHandler) GiftCardsWorkbook(c *gin.Context) {
	file, err := h.exportService.GiftCardsWorkbook(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendFile(c, file)
}

// ExpensesWorkbook godoc
// @Summary      Download the monthly expenses workbook
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year query int true "Period year"
// @Param        month query int true "Period month"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /exports/expenses/workbook [get]
func (h *ExportHandler) ExpensesWorkbook(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, err := h.exportService.ExpensesWorkbook(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendFile(c, file)
}

// PayrollWorkbook godoc
// @Summary      Download the monthly payroll workbook
// @Description  Exports the whole-salon sheet with global-formula breakdowns per employee
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year query int true "Period year"
// @Param        month query int true "Period month"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /exports/payroll/workbook [get]
func (h *ExportHandler) PayrollWorkbook(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, err := h.exportService.PayrollWorkbook(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendFile(c, file)
}

// MonthlyBundle godoc
// @Summary      Download the monthly closing bundle
// @Description  Zips the payroll, expenses and gift card workbooks of one period
// @Tags         exports
// @Produce      application/zip
// @Param        year query int true "Period year"
// @Param        month query int true "Period month"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /exports/monthly-bundle [get]
func (h *ExportHandler) MonthlyBundle(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, err := h.exportService.MonthlyBundle(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendFile(c, file)
}
