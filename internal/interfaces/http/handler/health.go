package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/urbanthreads/cartservice/internal/infrastructure/persistence"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health returns ok when the service and its database are reachable
func (h *HealthHandler) Health(c *gin.Context) {
	status := healthStatus{Status: "ok", Database: "ok"}
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status.Status = "degraded"
			status.Database = "unreachable"
		}
	}
	h.Success(c, status)
}
