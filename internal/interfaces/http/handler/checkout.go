package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcart "github.com/urbanthreads/cartservice/internal/application/cart"
	"github.com/urbanthreads/cartservice/internal/domain/shared"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/dto"
)

// CheckoutHandler exposes purchase finalization
type CheckoutHandler struct {
	BaseHandler
	service *appcart.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service *appcart.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cart/:cartID/checkout", h.FinalizePurchase)
}

// FinalizePurchase completes the purchase for a cart: totals are
// computed, the purchase event fires, and the cart empties. A checkout
// already pending for the same cart is rejected with a conflict.
func (h *CheckoutHandler) FinalizePurchase(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("cartID"))
	if err != nil {
		h.BadRequest(c, "cartID must be a valid UUID")
		return
	}

	resp, err := h.service.FinalizePurchase(c.Request.Context(), cartID)
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
