package middleware

import (
	"github.com/gin-gonic/gin"
	mem "serenestays/pkg/memcache"
	"serenestays/pkg/utils"
)

const (
	TokenCookie = "token"
	ClaimsKey   = "claims"
	EmailKey    = "email"
)

// CookieAuthMiddleware verifies the signed token carried in the auth cookie
// and stores its claims in the context.
func CookieAuthMiddleware(tokens *utils.TokenManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookie)
		if err != nil || tokenString == "" {
			utils.AbortWithServiceError(c, utils.ErrUnauthorized)
			return
		}

		if revoked.IsRevoked(tokenString) {
			utils.AbortWithServiceError(c, utils.ErrInvalidToken)
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.AbortWithServiceError(c, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(EmailKey, utils.ClaimString(claims, utils.EmailClaim))
		c.Next()
	}
}

// OwnerMiddleware rejects the request unless the authenticated email claim
// equals the given query parameter.
func OwnerMiddleware(queryParam string) gin.HandlerFunc {

	return func(c *gin.Context) {
		email := c.GetString(EmailKey)

		if email == "" || email != c.Query(queryParam) {
			utils.AbortWithServiceError(c, utils.ErrForbidden)
			return
		}

		c.Next()
	}
}
