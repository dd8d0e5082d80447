package ginserver

import (
	"strings"

	gin "github.com/gin-gonic/gin"

	"homestay/internal/domain/auth"
)

const sessionContextKey = "homestay.session"

// SessionMiddleware lifts the bearer token into an explicit auth.Session. Tokens are opaque here;
// the collaborators that receive them decide whether they are valid.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token != "" {
			c.Set(sessionContextKey, auth.NewSession(token, c.GetHeader("X-User-ID")))
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) auth.Session {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return auth.Anonymous
	}
	s, ok := val.(auth.Session)
	if !ok {
		return auth.Anonymous
	}
	return s
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
