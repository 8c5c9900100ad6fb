package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims is the token payload minted by the bot for /internal calls.
type ServiceClaims struct {
	Service string `json:"svc"`
	jwt.RegisteredClaims
}

// ServiceAuth gates the internal endpoints behind a short-lived HS256 bearer
// token. The internal surface trusts its caller for actor-level authorization;
// this middleware only keeps untrusted networks out of the trust boundary.
func ServiceAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			return
		}
		tokenStr := strings.TrimSpace(auth[len("Bearer "):])

		claims := &ServiceClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Service == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			return
		}

		c.Set("service", claims.Service)
		c.Next()
	}
}
