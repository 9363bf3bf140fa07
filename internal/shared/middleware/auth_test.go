package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tattoo-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(manager *jwt.Manager, handlerHit *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", AuthMiddleware(manager), func(c *gin.Context) {
		*handlerHit = true
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareRejectsBeforeHandlerRuns(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	handlerHit := false
	router := newAuthRouter(manager, &handlerHit)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, handlerHit, "the protected handler must never run")
			assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	handlerHit := false
	router := newAuthRouter(manager, &handlerHit)

	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID.String(), "ana@99tattoo.com.br", "client")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerHit)
}

func TestAuthMiddlewareRejectsRefreshTokenOnAccessRoutes(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	handlerHit := false
	router := newAuthRouter(manager, &handlerHit)

	refresh, err := manager.GenerateRefreshToken(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, handlerHit)
}
