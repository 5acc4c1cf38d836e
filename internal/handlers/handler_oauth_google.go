package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/middleware"
	"github.com/propfolio/propfolio-backend/internal/platform/config"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles the Google sign-in flows: the redirect dance and
// the ID-token exchange used by single-page frontends.
type GoogleOAuthHandler struct {
	*AuthHandler
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		AuthHandler:  NewAuthHandler(services.User, services.TokenService, cfg),
		oauthService: services.GoogleOAuthHandler,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services, cfg)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.GoogleLogin)
		google.GET("/callback", h.GoogleCallback)
		google.POST("/token", h.GoogleTokenSignIn)
	}
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to the Google consent screen.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) GoogleLogin(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, resolves the local account and issues a session.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Google code exchange failed: " + err.Error())
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}
	info, err := h.oauthService.GetUserInfo(ctx, token)
	if err != nil {
		respondError(c, err, "Failed to fetch Google profile")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	h.issueSession(c, user)
}

// GoogleTokenSignIn godoc
// @Summary Google ID-token sign-in
// @Description Validates a Google ID token from a frontend SDK and issues a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleCallbackRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *GoogleOAuthHandler) GoogleTokenSignIn(c *gin.Context) {
	var req dto.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	payload, err := h.oauthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := &domain.GoogleUserInfo{
		ID:    payload.Subject,
		Email: stringClaim(payload.Claims, "email"),
		Name:  stringClaim(payload.Claims, "name"),
	}
	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	h.issueSession(c, user)
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
