package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	giftcardapp "github.com/salon/backend/internal/application/giftcard"
	"github.com/salon/backend/internal/domain/identity"
	"github.com/salon/backend/internal/interfaces/http/middleware"
)

// maxImportFileSize caps uploaded workbooks at 10 MiB
const maxImportFileSize = 10 << 20

// GiftCardHandler handles gift card endpoints
type GiftCardHandler struct {
	BaseHandler
	giftCardService *giftcardapp.Service
}

// NewGiftCardHandler creates a new GiftCardHandler
func NewGiftCardHandler(giftCardService *giftcardapp.Service) *GiftCardHandler {
	return &GiftCardHandler{giftCardService: giftCardService}
}

// RegisterRoutes registers the gift card routes
func (h *GiftCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cards := rg.Group("/gift-cards")
	read := middleware.RequireCapability(string(identity.CapGiftCardsRead))
	write := middleware.RequireCapability(string(identity.CapGiftCardsWrite))
	importCap := middleware.RequireCapability(string(identity.CapGiftCardsImport))
	{
		cards.POST("", write, h.Sell)
		cards.GET("", read, h.List)
		cards.GET("/code/:code", read, h.GetByCode)
		cards.GET("/:id", read, h.GetByID)
		cards.PUT("/:id", write, h.Update)
		cards.DELETE("/:id", write, h.Delete)
		cards.POST("/:id/redeem", write, h.Redeem)
		cards.POST("/:id/cancel-redemption", write, h.CancelRedemption)
		cards.POST("/import", importCap, h.Import)
	}
}

// Sell godoc
// @Summary      Sell a gift card
// @Description  Registers a sold gift card; expiry defaults to 30 days after purchase
// @Tags         gift-cards
// @Accept       json
// @Produce      json
// @Param        request body giftcardapp.SellGiftCardRequest true "Gift card"
// @Success      201 {object} dto.Response{data=giftcardapp.GiftCardResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards [post]
func (h *GiftCardHandler) Sell(c *gin.Context) {
	var req giftcardapp.SellGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.giftCardService.Sell(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, card)
}

// List godoc
// @Summary      List gift cards
// @Tags         gift-cards
// @Produce      json
// @Param        status query string false "Status filter" Enums(active, redeemed, expired)
// @Param        customer_email query string false "Customer email filter"
// @Param        purchased_from query string false "Purchase date lower bound (RFC 3339)"
// @Param        purchased_to query string false "Purchase date upper bound (RFC 3339)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]giftcardapp.GiftCardResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /gift-cards [get]
func (h *GiftCardHandler) List(c *gin.Context) {
	var req giftcardapp.ListGiftCardsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	normalizePaging(&req.Page, &req.PageSize)

	cards, total, err := h.giftCardService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, cards, total, req.Page, req.PageSize)
}

// GetByID godoc
// @Summary      Get a gift card
// @Tags         gift-cards
// @Produce      json
// @Param        id path string true "Gift card ID" format(uuid)
// @Success      200 {object} dto.Response{data=giftcardapp.GiftCardResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/{id} [get]
func (h *GiftCardHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid gift card ID format")
		return
	}

	card, err := h.giftCardService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// GetByCode godoc
// @Summary      Look up a gift card by code
// @Tags         gift-cards
// @Produce      json
// @Param        code path string true "Gift card code"
// @Success      200 {object} dto.Response{data=giftcardapp.GiftCardResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/code/{code} [get]
func (h *GiftCardHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Gift card code is required")
		return
	}

	card, err := h.giftCardService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// Update godoc
// @Summary      Edit a gift card
// @Description  Updates customer details and notes; amount and dates are immutable
// @Tags         gift-cards
// @Accept       json
// @Produce      json
// @Param        id path string true "Gift card ID" format(uuid)
// @Param        request body giftcardapp.UpdateGiftCardRequest true "Editable fields"
// @Success      200 {object} dto.Response{data=giftcardapp.GiftCardResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/{id} [put]
func (h *GiftCardHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid gift card ID format")
		return
	}

	var req giftcardapp.UpdateGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.giftCardService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// Delete godoc
// @Summary      Delete a gift card
// @Tags         gift-cards
// @Produce      json
// @Param        id path string true "Gift card ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/{id} [delete]
func (h *GiftCardHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid gift card ID format")
		return
	}

	if err := h.giftCardService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Redeem godoc
// @Summary      Redeem a gift card
// @Description  Marks an active card as redeemed; expired or already redeemed cards are rejected
// @Tags         gift-cards
// @Produce      json
// @Param        id path string true "Gift card ID" format(uuid)
// @Success      200 {object} dto.Response{data=giftcardapp.GiftCardResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/{id}/redeem [post]
func (h *GiftCardHandler) Redeem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid gift card ID format")
		return
	}

	card, err := h.giftCardService.Redeem(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// CancelRedemption godoc
// @Summary      Cancel a redemption
// @Description  Clears the redemption timestamp so the card's status derives from its dates again
// @Tags         gift-cards
// @Produce      json
// @Param        id path string true "Gift card ID" format(uuid)
// @Success      200 {object} dto.Response{data=giftcardapp.GiftCardResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/{id}/cancel-redemption [post]
func (h *GiftCardHandler) CancelRedemption(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid gift card ID format")
		return
	}

	card, err := h.giftCardService.CancelRedemption(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, card)
}

// Import godoc
// @Summary      Import gift cards from a workbook
// @Description  Accepts an xlsx upload; valid rows are imported, failed rows are reported per row
// @Tags         gift-cards
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Workbook (.xlsx)"
// @Success      200 {object} dto.Response{data=giftcardapp.ImportReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /gift-cards/import [post]
func (h *GiftCardHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A workbook file upload is required")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		h.BadRequest(c, "Workbook exceeds the maximum upload size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportFileSize))
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}

	report, err := h.giftCardService.Import(c.Request.Context(), data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
