package handler

import (
	"net/http"
	"strings"
	"time"

	"grocery/internal/requestid"
	"grocery/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// claimsKey - ключ, под которым claims токена лежат в контексте gin.
const claimsKey = "user"

// AuthenticateToken проверяет bearer-токен из заголовка Authorization.
// Нет токена - 401; невалидный, просроченный или чужой токен - 403.
// При успехе claims кладутся в контекст для последующих обработчиков.
func (h *Handler) AuthenticateToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if authHeader == "" || len(parts) != 2 || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
		return
	}
	claims, err := h.tokens.Verify(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid token"})
		return
	}
	c.Set(claimsKey, claims)
	c.Next()
}

// IsAdmin пропускает дальше только администраторов. Выполняется строго после
// AuthenticateToken: без claims в контексте доступ закрыт.
func (h *Handler) IsAdmin(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Admins only"})
		return
	}
	c.Next()
}

// currentClaims достает claims текущего пользователя из контекста запроса.
func currentClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequestID присваивает каждому запросу идентификатор и возвращает его
// в заголовке X-Request-Id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = requestid.Generate()
		}
		c.Request = c.Request.WithContext(requestid.NewContext(c.Request.Context(), id))
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// AccessLog пишет строку журнала по завершении каждого запроса.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("запрос обработан",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestid.FromContext(c.Request.Context())),
		)
	}
}
