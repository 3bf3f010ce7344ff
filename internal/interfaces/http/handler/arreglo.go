package handler

import (
	"github.com/gin-gonic/gin"
	arregloapp "github.com/salon/backend/internal/application/arreglo"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// ArregloHandler handles garment repair job endpoints
type ArregloHandler struct {
	BaseHandler
	arregloService *arregloapp.Service
}

// NewArregloHandler creates a new ArregloHandler
func NewArregloHandler(arregloService *arregloapp.Service) *ArregloHandler {
	return &ArregloHandler{arregloService: arregloService}
}

// RegisterRoutes registers the arreglo routes
func (h *ArregloHandler) RegisterRoutes(rg *gin.RouterGroup) {
	arreglos := rg.Group("/arreglos")
	read := middleware.RequireCapability(string(identity.CapArreglosRead))
	write := middleware.RequireCapability(string(identity.CapArreglosWrite))
	{
		arreglos.POST("", write, h.Create)
		arreglos.GET("", read, h.List)
		arreglos.GET("/:id", read, h.GetByID)
		arreglos.PUT("/:id", write, h.Update)
		arreglos.DELETE("/:id", write, h.Delete)
		arreglos.POST("/:id/start", write, h.Start)
		arreglos.POST("/:id/complete", write, h.Complete)
		arreglos.POST("/:id/cancel", write, h.Cancel)
	}
}

// Create godoc
// @Summary      Register a repair job
// @Tags         arreglos
// @Accept       json
// @Produce      json
// @Param        request body arregloapp.CreateArregloRequest true "Repair job"
// @Success      201 {object} dto.Response{data=arregloapp.ArregloResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos [post]
func (h *ArregloHandler) Create(c *gin.Context) {
	var req arregloapp.CreateArregloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	job, err := h.arregloService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, job)
}

// List godoc
// @Summary      List repair jobs
// @Tags         arreglos
// @Produce      json
// @Param        state query string false "State filter" Enums(pending, in_progress, completed, cancelled)
// @Param        search query string false "Customer search"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]arregloapp.ArregloResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /arreglos [get]
func (h *ArregloHandler) List(c *gin.Context) {
	var req arregloapp.ListArreglosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	normalizePaging(&req.Page, &req.PageSize)

	jobs, total, err := h.arregloService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, jobs, total, req.Page, req.PageSize)
}

// GetByID godoc
// @Summary      Get a repair job
// @Tags         arreglos
// @Produce      json
// @Param        id path string true "Repair job ID" format(uuid)
// @Success      200 {object} dto.Response{data=arregloapp.ArregloResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos/{id} [get]
func (h *ArregloHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid repair job ID format")
		return
	}

	job, err := h.arregloService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, job)
}

// Update godoc
// @Summary      Update a repair job
// @Tags         arreglos
// @Accept       json
// @Produce      json
// @Param        id path string true "Repair job ID" format(uuid)
// @Param        request body arregloapp.UpdateArregloRequest true "Repair job"
// @Success      200 {object} dto.Response{data=arregloapp.ArregloResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos/{id} [put]
func (h *ArregloHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid repair job ID format")
		return
	}

	var req arregloapp.UpdateArregloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	job, err := h.arregloService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, job)
}

// Delete godoc
// @Summary      Delete a repair job
// @Tags         arreglos
// @Produce      json
// @Param        id path string true "Repair job ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos/{id} [delete]
func (h *ArregloHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid repair job ID format")
		return
	}

	if err := h.arregloService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Start godoc
// @Summary      Start a repair job
// @Description  Moves a pending job into progress
// @Tags         arreglos
// @Produce      json
// @Param        id path string true "Repair job ID" format(uuid)
// @Success      200 {object} dto.Response{data=arregloapp.ArregloResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos/{id}/start [post]
func (h *ArregloHandler) Start(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid repair job ID format")
		return
	}

	job, err := h.arregloService.Start(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, job)
}

// Complete godoc
// @Summary      Complete a repair job
// @Tags         arreglos
// @Produce      json
// @Param        id path string true "Repair job ID" format(uuid)
// @Success      200 {object} dto.Response{data=arregloapp.ArregloResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos/{id}/complete [post]
func (h *ArregloHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid repair job ID format")
		return
	}

	job, err := h.arregloService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, job)
}

// Cancel godoc
// @Summary      Cancel a repair job
// @Tags         arreglos
// @Produce      json
// @Param        id path string true "Repair job ID" format(uuid)
// @Success      200 {object} dto.Response{data=arregloapp.ArregloResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /arreglos/{id}/cancel [post]
func (h *ArregloHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid repair job ID format")
		return
	}

	job, err := h.arregloService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, job)
}
