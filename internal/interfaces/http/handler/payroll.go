package handler

import (
	"github.com/gin-gonic/gin"
	payrollapp "github.com/salon/backend/internal/application/payroll"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/interfaces/http/dto"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// PayrollHandler handles salary record endpoints
type PayrollHandler struct {
	BaseHandler
	payrollService *payrollapp.Service
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(payrollService *payrollapp.Service) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// RegisterRoutes registers the payroll routes
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/salary-records")
	read := middleware.RequireCapability(string(identity.CapPayrollRead))
	write := middleware.RequireCapability(string(identity.CapPayrollWrite))
	{
		records.POST("", write, h.Create)
		records.GET("", read, h.List)
		records.GET("/:id", read, h.GetByID)
		records.PUT("/:id", write, h.Update)
		records.DELETE("/:id", write, h.Delete)
		records.GET("/:id/compute/single", read, h.ComputeSingle)
		records.GET("/:id/compute/global", read, h.ComputeGlobal)
	}
	rg.GET("/payroll/global-sheet", read, h.GlobalSheet)
}

// Create godoc
// @Summary      Create a salary record
// @Description  Opens a salary record for an employee and period, snapshotting name and role
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request body payrollapp.CreateSalaryRecordRequest true "Salary record"
// @Success      201 {object} dto.Response{data=payrollapp.SalaryRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salary-records [post]
func (h *PayrollHandler) Create(c *gin.Context) {
	var req payrollapp.CreateSalaryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.payrollService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// List godoc
// @Summary      List salary records
// @Tags         payroll
// @Produce      json
// @Param        employee_id query string false "Employee filter" format(uuid)
// @Param        period_year query int false "Period year"
// @Param        period_month query int false "Period month"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]payrollapp.SalaryRecordResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /salary-records [get]
func (h *PayrollHandler) List(c *gin.Context) {
	var req payrollapp.ListSalaryRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	normalizePaging(&req.Page, &req.PageSize)

	records, total, err := h.payrollService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, req.Page, req.PageSize)
}

// GetByID godoc
// @Summary      Get a salary record
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} dto.Response{data=payrollapp.SalaryRecordResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salary-records/{id} [get]
func (h *PayrollHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	record, err := h.payrollService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Update godoc
// @Summary      Update a salary record
// @Description  Replaces the entered amounts and extras on a record
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Param        request body payrollapp.UpdateSalaryRecordRequest true "Amounts"
// @Success      200 {object} dto.Response{data=payrollapp.SalaryRecordResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salary-records/{id} [put]
func (h *PayrollHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	var req payrollapp.UpdateSalaryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.payrollService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Delete godoc
// @Summary      Delete a salary record
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salary-records/{id} [delete]
func (h *PayrollHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	if err := h.payrollService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ComputeSingle godoc
// @Summary      Compute the per-employee payout
// @Description  Applies the single-sheet formula to one salary record
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} dto.Response{data=payrollapp.SalaryComputationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salary-records/{id}/compute/single [get]
func (h *PayrollHandler) ComputeSingle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	result, err := h.payrollService.ComputeSingle(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ComputeGlobal godoc
// @Summary      Compute the whole-salon payout row
// @Description  Applies the global-sheet formula to one salary record, including the insured top-up
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Record ID" format(uuid)
// @Success      200 {object} dto.Response{data=payrollapp.SalaryComputationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /salary-records/{id}/compute/global [get]
func (h *PayrollHandler) ComputeGlobal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	result, err := h.payrollService.ComputeGlobal(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GlobalSheet godoc
// @Summary      Get the monthly payroll sheet
// @Description  Computes the whole-salon sheet for a period with cash and top-up totals
// @Tags         payroll
// @Produce      json
// @Param        year query int true "Period year"
// @Param        month query int true "Period month"
// @Success      200 {object} dto.Response{data=payrollapp.GlobalSheetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payroll/global-sheet [get]
func (h *PayrollHandler) GlobalSheet(c *gin.Context) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sheet, err := h.payrollService.GlobalSheet(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sheet)
}
