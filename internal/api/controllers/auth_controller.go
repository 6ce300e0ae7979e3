package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"serenestays/internal/models/response_models"
	mem "serenestays/pkg/memcache"
	"serenestays/pkg/middleware"
	"serenestays/pkg/utils"
)

type CookieOptions struct {
	Secure bool
}

// sameSite mirrors the two deployment profiles: cross-site cookies for the
// hosted client, strict ones for plain-http localhost.
func (o CookieOptions) sameSite() http.SameSite {
	if o.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

type AuthController struct {
	tokens  *utils.TokenManager
	revoked mem.RevokedTokenStore
	cookie  CookieOptions
	logger  *zap.Logger
}

func NewAuthController(tokens *utils.TokenManager, revoked mem.RevokedTokenStore, cookie CookieOptions, logger *zap.Logger) *AuthController {
	return &AuthController{
		tokens:  tokens,
		revoked: revoked,
		cookie:  cookie,
		logger:  logger,
	}
}

// IssueToken godoc
// @Summary Issue an auth cookie
// @Description Sign the posted claims and set them as the token cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response_models.SuccessAck
// @Failure 400 {object} utils.APIResponse
// @Router /jwt [post]
func (a *AuthController) IssueToken(c *gin.Context) {
	claims, err := bindDocument(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	token, _, err := a.tokens.CreateToken(claims)
	if err != nil {
		a.logger.Error("signing token", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.logger.Debug("issued token", zap.Any("email", claims[utils.EmailClaim]))

	c.SetSameSite(a.cookie.sameSite())
	c.SetCookie(middleware.TokenCookie, token, int(a.tokens.TTL().Seconds()), "/", "", a.cookie.Secure, true)
	utils.RespondJSON(c, response_models.SuccessAck{Success: true})
}

// Logout godoc
// @Summary Clear the auth cookie
// @Description Always succeeds; a presented valid token is revoked until it expires
// @Tags Auth
// @Produce json
// @Success 200 {object} response_models.SuccessAck
// @Router /logout [post]
func (a *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.TokenCookie); err == nil && token != "" {
		a.revoke(token)
	}

	c.SetSameSite(a.cookie.sameSite())
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", a.cookie.Secure, true)
	utils.RespondJSON(c, response_models.SuccessAck{Success: true})
}

// revoke remembers a token only if it verifies, so the store is bounded by
// tokens this server signed and their real expiry.
func (a *AuthController) revoke(token string) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		a.logger.Debug("ignoring unverifiable token on logout", zap.Error(err))
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	a.revoked.Revoke(token, exp.Time)
}
