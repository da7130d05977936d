package handler

import (
	"github.com/gin-gonic/gin"

	appsession "github.com/urbanthreads/cartservice/internal/application/session"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/dto"
	"github.com/urbanthreads/cartservice/internal/interfaces/http/middleware"
)

// SessionHandler exposes visitor login state and tracking consent
type SessionHandler struct {
	BaseHandler
	service *appsession.Service
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service *appsession.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// RegisterRoutes registers session and consent routes
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sess := rg.Group("/session")
	{
		sess.POST("/login", h.Login)
		sess.POST("/logout", h.Logout)
		sess.GET("/user", h.CurrentUser)
		sess.GET("/consent", h.GetConsent)
		sess.PUT("/consent", h.SetConsent)
	}
}

// Login attaches a shopper identity to the visitor session
func (h *SessionHandler) Login(c *gin.Context) {
	var req appsession.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	user, err := h.service.Login(c.Request.Context(), middleware.GetVisitorID(c), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Logout detaches the shopper identity from the visitor session
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.GetVisitorID(c)); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CurrentUser returns the shopper attached to the visitor session
func (h *SessionHandler) CurrentUser(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, user)
}

// GetConsent returns the visitor's tracking decision
func (h *SessionHandler) GetConsent(c *gin.Context) {
	resp, err := h.service.GetConsent(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetConsent records the visitor's tracking decision
func (h *SessionHandler) SetConsent(c *gin.Context) {
	var req appsession.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	resp, err := h.service.SetConsent(c.Request.Context(), middleware.GetVisitorID(c), req.Granted)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}
