// README: Firebase ID-token auth; the verified uid feeds the generation quota.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/infra"
)

const (
	callerUIDKey   = "caller_uid"
	callerEmailKey = "caller_email"
)

// Auth rejects requests without a valid "Bearer <id token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if errors.Is(err, infra.ErrTokenRevoked) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked, sign in again"})
			return
		}
		if err != nil || token == nil || token.UID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerUIDKey, token.UID)
		c.Set(callerEmailKey, token.Email)
		c.Next()
	}
}

// CallerUID returns the verified uid, or "" for anonymous requests.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}

// CallerEmail returns the verified email claim, if any.
func CallerEmail(c *gin.Context) string {
	return c.GetString(callerEmailKey)
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
