package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes. The group must already
// be behind the auth middleware.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PATCH("/me", h.updateMe)
		users.DELETE("/me", h.deleteMe)
		users.POST("/me/email", h.changeEmail)
		users.GET("/:username", h.getUserByUsername)
	}
}

// getMe godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "user-not-found"
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update the current user's profile
// @Description Changes username and/or avatar. Email changes go through POST /users/me/email.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "username-already-in-use"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidRequestBody})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changeEmail godoc
// @Summary Change the current user's email
// @Description Sends a verification link to the new address. The account keeps its old address until the link is used.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ChangeEmailRequest true "New email"
// @Success 202 {object} dto.StatusResponse
// @Failure 400 {object} ErrorResponse "email-already-in-use"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/email [post]
func (h *userHandler) changeEmail(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidRequestBody})
		return
	}

	if err := h.userService.RequestEmailChange(c.Request.Context(), userID, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.StatusResponse{Status: "verification-sent"})
}

// deleteMe godoc
// @Summary Delete the current user
// @Description Removes the account together with its sessions, pending verifications and provider links.
// @Tags users
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "user-not-found"
// @Security BearerAuth
// @Router /users/me [delete]
func (h *userHandler) deleteMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deleted by owner", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}

// getUserByUsername godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.PublicUserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "user-not-found"
// @Security BearerAuth
// @Router /users/{username} [get]
func (h *userHandler) getUserByUsername(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicUserResponse(user))
}
