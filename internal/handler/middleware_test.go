package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequestRawAuth(router *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	req.Header.Set("Authorization", authHeader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// expiredToken выписывает уже просроченный токен с тем же секретом, что и тестовый роутер.
func expiredToken(t *testing.T, userID int) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":      userID,
		"isAdmin": false,
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiredTokenForbidden(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/get-items", "", expiredToken(t, 7))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Invalid token", parseBody(t, w)["error"])
}

func TestAdminGateRunsAfterAuthGate(t *testing.T) {
	router, _ := setupRouter(t)

	// Без токена отрабатывает первый барьер - 401, а не 403
	w := doRequest(router, http.MethodPost, "/add-item", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized: No token provided", parseBody(t, w)["error"])

	// С чужим токеном - 403 от первого барьера
	w = doRequest(router, http.MethodPost, "/add-item", `{}`, "bad")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: Invalid token", parseBody(t, w)["error"])
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	router, _ := setupRouter(t)

	req := doRequest(router, http.MethodGet, "/get-items", "", "")
	assert.Equal(t, http.StatusUnauthorized, req.Code)

	// Заголовок без пробела и токена
	w := doRequestRawAuth(router, http.MethodGet, "/get-items", "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
