package handlers

import (
	"net/http"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles signup, login and the token, verification and reset flows.
type authHandler struct {
	authService       portssvc.AuthSvcFacade
	emailVerification portssvc.EmailVerificationSvc
	passwordReset     portssvc.PasswordResetSvc
	posthog           *utils.PosthogClientWrapper
}

func newAuthHandler(services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		authService:       services.Auth,
		emailVerification: services.EmailVerification,
		passwordReset:     services.PasswordReset,
		posthog:           posthog,
	}
}

// registerAuthRoutes sets up the /auth routes. Credential-guessing endpoints
// go through limit; logout-all requires an access token.
func registerAuthRoutes(rg *gin.RouterGroup, h *authHandler, limit, requireAuth gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", limit, h.signup)
		auth.POST("/login", limit, h.login)
		auth.POST("/refresh-token", h.refreshToken)
		auth.POST("/logout", h.logout)
		auth.POST("/logout-all", requireAuth, h.logoutAll)
		auth.GET("/verify/:userID/:token", limit, h.verifyEmail)
		auth.POST("/forgot-password", limit, h.forgotPassword)
		auth.POST("/verify-token", limit, h.verifyResetToken)
		auth.POST("/reset-password/:token", limit, h.resetPassword)
	}
}

// signup godoc
// @Summary Register new user
// @Description Creates an unverified account and emails a verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidRequestBody})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, user.UserID, utils.EventUserSignedUp, nil)
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Authenticates a verified user and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "invalid-email, wrong-password or email-not-verified"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, result.User.UserID, utils.EventUserLoggedIn, nil)
	c.JSON(http.StatusOK, dto.ToLoginResponse(result))
}

// refreshToken godoc
// @Summary Rotate a refresh token
// @Description Exchanges a refresh token for a new pair. The presented token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse "invalid-refresh-token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh-token [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRefreshTokenResponse(pair))
}

// logout godoc
// @Summary Log out one device
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token of the session to end"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "success"})
}

// logoutAll godoc
// @Summary Log out every device
// @Tags auth
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout-all [post]
func (h *authHandler) logoutAll(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, userID, utils.EventUserLoggedOutAll, nil)
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "success"})
}

const emailVerifiedPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Email verified</title></head>
<body><h1>Your email address is verified.</h1><p>You can close this page and sign in.</p></body>
</html>
`

// verifyEmail godoc
// @Summary Confirm an email address
// @Description Target of the link sent by email. Consumes the token and renders a confirmation page.
// @Tags auth
// @Produce html
// @Param userID path string true "User ID"
// @Param token path string true "Verification token"
// @Success 200 {string} string "HTML confirmation page"
// @Failure 400 {object} ErrorResponse "invalid-token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify/{userID}/{token} [get]
func (h *authHandler) verifyEmail(c *gin.Context) {
	userID := c.Param("userID")
	if err := h.emailVerification.Consume(c.Request.Context(), userID, c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, userID, utils.EventUserVerified, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(emailVerifiedPage))
}

// forgotPassword godoc
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} ErrorResponse "no-user-with-this-email"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.passwordReset.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "success"})
}

// verifyResetToken godoc
// @Summary Check a password reset code
// @Description Reports whether the code is valid without consuming it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyResetTokenRequest true "Email and code"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} ErrorResponse "invalid-or-expired-token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-token [post]
func (h *authHandler) verifyResetToken(c *gin.Context) {
	var req dto.VerifyResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidRequestBody})
		return
	}
	// A malformed code is simply not a valid one.
	if err := dto.Validate(req); err != nil {
		respondError(c, apperrors.ErrInvalidOrExpiredToken)
		return
	}

	if err := h.passwordReset.ValidateToken(c.Request.Context(), req.Token, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "success"})
}

// resetPassword godoc
// @Summary Set a new password with a reset code
// @Description Consumes the code, replaces the password and signs out every device.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset code"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} ErrorResponse "invalid-or-expired-token or password-donot-match"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/reset-password/{token} [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, err := h.passwordReset.ResetPassword(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, userID, utils.EventPasswordReset, nil)
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "success"})
}
