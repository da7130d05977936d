package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcart "github.com/urbanthreads/cartservice/internal/application/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/dto"
)

// CartHandler exposes cart mutations and the cart snapshot
type CartHandler struct {
	BaseHandler
	service *appcart.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service *appcart.Service) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	{
		carts.GET("/:cartID", h.GetCart)
		carts.POST("/:cartID/items", h.AddItem)
		carts.DELETE("/:cartID/items/:name", h.RemoveItem)
		carts.PATCH("/:cartID/items/:name/quantity", h.ChangeQuantity)
	}
}

type addItemPayload struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
	ImageRef  string `json:"image_ref"`
}

type changeQuantityPayload struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *CartHandler) cartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("cartID"))
	if err != nil {
		h.BadRequest(c, "cartID must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// GetCart returns the rendered cart snapshot
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds one unit of a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	var payload addItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), cartID, appcart.AddItemRequest{
		Name:      payload.Name,
		UnitPrice: payload.UnitPrice,
		ImageRef:  payload.ImageRef,
	})
	h.mutationResult(c, resp, err)
}

// RemoveItem removes a whole line item from the cart. Removing an item
// that is not in the cart succeeds and reports Changed: false.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	resp, err := h.service.RemoveItem(c.Request.Context(), cartID, c.Param("name"))
	h.mutationResult(c, resp, err)
}

// ChangeQuantity adjusts a line item's quantity by a signed delta
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	var payload changeQuantityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	resp, err := h.service.ChangeQuantity(c.Request.Context(), cartID, c.Param("name"), payload.Delta)
	h.mutationResult(c, resp, err)
}

// mutationResult renders a mutation outcome. A persistence failure
// arrives alongside a completed in-memory result and is reported as a
// warning on a successful response, not as a failing status.
func (h *CartHandler) mutationResult(c *gin.Context, resp *appcart.MutationResponse, err error) {
	if err != nil {
		if resp != nil && errors.Is(err, shared.ErrPersistenceFailure) {
			h.SuccessWithWarning(c, resp, dto.ErrCodePersistenceFailure, shared.ErrPersistenceFailure.Message)
			return
		}
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}
