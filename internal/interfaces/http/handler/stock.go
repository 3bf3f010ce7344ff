package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/salon/backend/internal/application/inventory"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// StockHandler handles stock item endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.Service) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterRoutes registers the stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock-items")
	read := middleware.RequireCapability(string(identity.CapStockRead))
	write := middleware.RequireCapability(string(identity.CapStockWrite))
	{
		stock.POST("", write, h.Create)
		stock.GET("", read, h.List)
		stock.GET("/:id", read, h.GetByID)
		stock.PUT("/:id", write, h.Update)
		stock.DELETE("/:id", write, h.Delete)
		stock.POST("/:id/restock", write, h.Restock)
		stock.POST("/:id/consume", write, h.Consume)
	}
}

// Create godoc
// @Summary      Create a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateStockItemRequest true "Stock item"
// @Success      201 {object} dto.Response{data=inventoryapp.StockItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-items [post]
func (h *StockHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.stockService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// List godoc
// @Summary      List stock items
// @Tags         stock
// @Produce      json
// @Param        search query string false "Name search"
// @Param        low_stock query bool false "Only items at or below their minimum"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]inventoryapp.StockItemResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /stock-items [get]
func (h *StockHandler) List(c *gin.Context) {
	var req inventoryapp.ListStockItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	normalizePaging(&req.Page, &req.PageSize)

	items, total, err := h.stockService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// GetByID godoc
// @Summary      Get a stock item
// @Tags         stock
// @Produce      json
// @Param        id path string true "Stock item ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.StockItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-items/{id} [get]
func (h *StockHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	item, err := h.stockService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Update godoc
// @Summary      Update a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock item ID" format(uuid)
// @Param        request body inventoryapp.UpdateStockItemRequest true "Stock item"
// @Success      200 {object} dto.Response{data=inventoryapp.StockItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-items/{id} [put]
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	var req inventoryapp.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.stockService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete a stock item
// @Tags         stock
// @Produce      json
// @Param        id path string true "Stock item ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-items/{id} [delete]
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	if err := h.stockService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Restock godoc
// @Summary      Add units to a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock item ID" format(uuid)
// @Param        request body inventoryapp.MovementRequest true "Quantity"
// @Success      200 {object} dto.Response{data=inventoryapp.StockItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-items/{id}/restock [post]
func (h *StockHandler) Restock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	var req inventoryapp.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.stockService.Restock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Consume godoc
// @Summary      Take units out of a stock item
// @Description  Rejects movements that would leave negative stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock item ID" format(uuid)
// @Param        request body inventoryapp.MovementRequest true "Quantity"
// @Success      200 {object} dto.Response{data=inventoryapp.StockItemResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock-items/{id}/consume [post]
func (h *StockHandler) Consume(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid stock item ID format")
		return
	}

	var req inventoryapp.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.stockService.Consume(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}
