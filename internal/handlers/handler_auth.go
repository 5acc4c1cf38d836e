package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/middleware"
	"github.com/propfolio/propfolio-backend/internal/platform/config"
	"github.com/propfolio/propfolio-backend/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.TokenService, cfg)

	// 5 login attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/check", middleware.AuthMiddleware(cfg.JWTSecret), h.Check)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT access token. The refresh token travels in an http-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.GetUserByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	h.issueSession(c, user)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new dashboard account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token cookie and returns a fresh access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, err := c.Cookie("uid")
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing session"})
		return
	}
	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing refresh token"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.tokenService.ValidateAndParseRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired"})
			return
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		return
	}

	h.issueSession(c, user)
}

// Logout godoc
// @Summary Log out
// @Description Clears the stored refresh token and session cookies.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, err := c.Cookie("uid"); err == nil && userID != "" {
		if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to clear refresh token",
				slog.String("user_id", userID), slog.String("error", err.Error()))
		}
	}
	h.clearSessionCookies(c)
	c.Status(http.StatusNoContent)
}

// Check godoc
// @Summary Check session
// @Description Returns the authenticated user when the access token is valid.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthCheckResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/check [get]
// @Security BearerAuth
func (h *AuthHandler) Check(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.AuthCheckResponse{User: dto.ToUserResponse(user)})
}

// issueSession generates the access and refresh tokens, persists the refresh
// token hash and writes the session cookies plus the login response.
func (h *AuthHandler) issueSession(c *gin.Context, user *domain.User) {
	ctx := c.Request.Context()

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate refresh token")
		return
	}
	if err := h.userService.SetRefreshToken(ctx, user.UserID, refreshToken, refreshExpiry); err != nil {
		respondError(c, err, "Failed to persist session")
		return
	}

	secure := h.cfg.IsProduction
	maxAge := int(time.Until(refreshExpiry).Seconds())
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, maxAge, h.cfg.RefreshTokenCookiePath, "", secure, true)
	c.SetCookie("uid", user.UserID, maxAge, h.cfg.RefreshTokenCookiePath, "", secure, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      dto.ToUserResponse(user),
	})
}

// clearSessionCookies expires the refresh token cookies.
func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	secure := h.cfg.IsProduction
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", secure, true)
	c.SetCookie("uid", "", -1, h.cfg.RefreshTokenCookiePath, "", secure, true)
}
