package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"mindvale-server/internal/pkg/authtoken"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey    = "user_id"
	ctxUserEmailKey = "user_email"
)

// AuthMiddleware verifies bearer tokens minted by the external auth provider.
// There is no session store on this side; the token claims are the identity.
type AuthMiddleware struct {
	verifier *authtoken.Verifier
}

func NewAuthMiddleware(verifier *authtoken.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			slog.Warn("Token verification failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxUserEmailKey)
	if !exists {
		return "", false
	}

	e, ok := email.(string)
	return e, ok
}
