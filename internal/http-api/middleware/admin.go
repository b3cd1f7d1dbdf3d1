package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the shared administrator secret.
const AdminTokenHeader = "X-Admin-Token"

// legacyKey is the XOR key of the historical wire format, where clients sent
// base64(xor(secret, key)) instead of the secret itself. The transform never
// provided confidentiality; it is kept only so old clients keep working.
const legacyKey = "bangumi-media-log-2026"

// decodeLegacyToken reverses the legacy XOR+Base64 header form.
func decodeLegacyToken(s string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", false
	}
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = b ^ legacyKey[i%len(legacyKey)]
	}
	return string(out), true
}

// TokenMatches compares a presented header value against the server-held
// secret in constant time. Both the raw secret and its legacy encoded form
// are accepted.
func TokenMatches(header, secret string) bool {
	if header == "" || secret == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(header), []byte(secret)) == 1 {
		return true
	}
	if decoded, ok := decodeLegacyToken(header); ok {
		return subtle.ConstantTimeCompare([]byte(decoded), []byte(secret)) == 1
	}
	return false
}

// AdminAuth gates mutating item routes behind the shared secret.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if !TokenMatches(token, secret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
