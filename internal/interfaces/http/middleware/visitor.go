package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/urbanthreads/cartservice/internal/domain/session"
)

const (
	// VisitorCookieName is the cookie that carries the visitor session ID
	VisitorCookieName = "ut_visitor"
	// VisitorHeaderName lets API clients carry the visitor ID without cookies
	VisitorHeaderName = "X-Visitor-ID"
	// visitorCookieMaxAge is 30 days in seconds, matching session storage TTL
	visitorCookieMaxAge = 30 * 24 * 60 * 60

	visitorContextKey = "visitor_id"
)

// VisitorSession assigns each request a stable visitor session ID.
// The ID comes from the X-Visitor-ID header, then the visitor cookie;
// new visitors get a generated ID set as a cookie. The ID is attached
// to both the gin context and the request context so downstream
// collaborators (consent gate, session store) can see it.
func VisitorSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID := c.GetHeader(VisitorHeaderName)
		if visitorID == "" {
			if cookie, err := c.Cookie(VisitorCookieName); err == nil {
				visitorID = cookie
			}
		}
		if visitorID == "" {
			visitorID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, visitorID, visitorCookieMaxAge, "/", "", false, true)
		}

		c.Set(visitorContextKey, visitorID)
		c.Writer.Header().Set(VisitorHeaderName, visitorID)
		c.Request = c.Request.WithContext(session.WithVisitorID(c.Request.Context(), visitorID))
		c.Next()
	}
}

// GetVisitorID returns the visitor session ID for the request
func GetVisitorID(c *gin.Context) string {
	return c.GetString(visitorContextKey)
}
