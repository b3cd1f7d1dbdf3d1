package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"medialog/internal/ingestion/bangumi"

	"github.com/gin-gonic/gin"
)

// IdentityVerifier resolves a bearer token to the Bangumi account it belongs
// to. Satisfied by *bangumi.Client.
type IdentityVerifier interface {
	GetMe(ctx context.Context, token string) (*bangumi.User, error)
}

// BangumiAuth authenticates the import route: the caller's bearer token is
// presented to the Bangumi identity endpoint and the resulting username must
// equal the configured one. Any verification failure - network error,
// timeout, non-2xx, missing or mismatched username - is a 401; there are no
// retries on the request path.
func BangumiAuth(verifier IdentityVerifier, expectedUsername string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := verifier.GetMe(ctx, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
			c.Abort()
			return
		}
		if user.Username == "" || user.Username != expectedUsername {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "username mismatch"})
			c.Abort()
			return
		}

		c.Set("bangumi_username", user.Username)
		c.Next()
	}
}
