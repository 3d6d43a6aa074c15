package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

var (
	errInvalidAuthorizationCode = apperrors.NewBadRequestError("invalid-authorization-code")
	errOAuthProviderUnavailable = apperrors.NewGatewayTimeoutError("oauth-provider-unavailable")
)

// googleOAuthHandler handles Google sign-in. Both the code exchange and the
// direct ID token flows end in the same account linking and session creation.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	posthog            *utils.PosthogClientWrapper
}

func newGoogleOAuthHandler(services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: services.GoogleOAuthHandler,
		authService:        services.Auth,
		posthog:            posthog,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, h *googleOAuthHandler, limit gin.HandlerFunc) {
	googleRoutes := rg.Group("/auth/google")
	{
		googleRoutes.GET("/login-url", h.loginURL)
		googleRoutes.POST("/exchange-code", limit, h.exchangeCode)
		googleRoutes.POST("/id-token", limit, h.idToken)
	}
}

// loginURL godoc
// @Summary Google consent screen URL
// @Description Returns the URL to send the user to and the CSRF state the client must check on return.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.LoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, apperrors.NewInternalError(err))
		return
	}
	c.JSON(http.StatusOK, dto.LoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// exchangeCode godoc
// @Summary Sign in with a Google authorization code
// @Description Exchanges the code with Google, validates the ID token, links or creates the account and starts a session.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "invalid-authorization-code, invalid-email or email-not-verified"
// @Failure 401 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse "oauth-provider-unavailable"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Warn("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		// Google answers invalid_grant for a reused or expired code, which is the client's fault.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "bad request") {
			respondError(c, errInvalidAuthorizationCode)
			return
		}
		respondError(c, errOAuthProviderUnavailable)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		respondError(c, errOAuthProviderUnavailable)
		return
	}

	h.signIn(c, idTokenString)
}

// idToken godoc
// @Summary Sign in with a Google ID token
// @Description For clients that obtain the ID token themselves, e.g. mobile apps.
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "invalid-email or email-not-verified"
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/id-token [post]
func (h *googleOAuthHandler) idToken(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	h.signIn(c, req.IDToken)
}

func (h *googleOAuthHandler) signIn(c *gin.Context, idTokenString string) {
	ctx := c.Request.Context()

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	data, err := h.googleOAuthService.OAuthDataFromPayload(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.authService.LoginWithOAuth(ctx, data)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.PosthogEvent(c, h.posthog, result.User.UserID, utils.EventOAuthAccountLinked, map[string]any{"provider": data.ProviderID})
	c.JSON(http.StatusOK, dto.ToLoginResponse(result))
}
