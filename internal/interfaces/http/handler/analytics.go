package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanthreads/cartservice/internal/infrastructure/analytics"
)

// AnalyticsHandler exposes a debug view of the data layer so the
// marketing pushes can be inspected without a tag manager attached
type AnalyticsHandler struct {
	BaseHandler
	dataLayer *analytics.DataLayer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(dataLayer *analytics.DataLayer) *AnalyticsHandler {
	return &AnalyticsHandler{dataLayer: dataLayer}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/events", h.ListEvents)
}

// ListEvents returns every data layer push in emission order
func (h *AnalyticsHandler) ListEvents(c *gin.Context) {
	h.Success(c, h.dataLayer.Entries())
}
