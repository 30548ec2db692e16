package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string, secret string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testRouter(handlerCalled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	v := NewVerifier(testSecret)
	r := gin.New()
	r.POST("/guarded", v.RequireRole(RoleAdmin, RoleEditor, RoleDeveloper), func(c *gin.Context) {
		*handlerCalled = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole_MissingToken(t *testing.T) {
	called := false
	w := doRequest(testRouter(&called), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called, "handler must not run without a token")
}

func TestRequireRole_InvalidToken(t *testing.T) {
	called := false
	w := doRequest(testRouter(&called), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireRole_WrongSecret(t *testing.T) {
	called := false
	token := signToken(t, RoleAdmin, "other-secret")
	w := doRequest(testRouter(&called), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestRequireRole_InsufficientRole(t *testing.T) {
	called := false
	token := signToken(t, "user", testSecret)
	w := doRequest(testRouter(&called), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called, "handler must not run for a plain user")
}

func TestRequireRole_Allowed(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleEditor, RoleDeveloper} {
		called := false
		token := signToken(t, role, testSecret)
		w := doRequest(testRouter(&called), "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
		assert.True(t, called, "role %s", role)
	}
}

func TestRequireRole_ExpiredToken(t *testing.T) {
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	called := false
	w := doRequest(testRouter(&called), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}
