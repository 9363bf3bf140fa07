package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================================
// CART SESSION
// ===================================

const (
	// Cookie settings
	SessionCookieName = "tattoo_cart_session"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	// Context key
	ContextKeySessionID = "session_id"
)

// SessionConfig holds cookie configuration for cart sessions.
type SessionConfig struct {
	CookieDomain   string // "" for current domain
	CookiePath     string // Default: "/"
	CookieSecure   bool   // true for HTTPS only
	CookieSameSite http.SameSite
}

// DefaultSessionConfig returns secure cookie defaults.
// Set CookieSecure=false for localhost development.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieDomain:   "",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// CartSession identifies the visitor's cart.
//
// Flow:
// 1. Read the session cookie
// 2. If missing, generate a new UUID and set the cookie
// 3. Put the session id in the context for cart handlers
//
// The cart itself lives server-side keyed by this session id, so the
// same cart follows the visitor whether or not they are logged in.
func CartSession(config SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			setSessionCookie(c, sessionID, config)
		} else if _, err := uuid.Parse(sessionID); err != nil {
			// Tampered or legacy cookie: reissue
			sessionID = uuid.New().String()
			setSessionCookie(c, sessionID, config)
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, sessionID string, config SessionConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		SessionCookieName,
		sessionID,
		SessionMaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true, // HttpOnly
	)
}

// SessionIDFromContext returns the cart session id set by CartSession.
func SessionIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(ContextKeySessionID)
	return id, id != ""
}
