package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

const invalidRequestBody = "invalid-request-body"

// respondError writes err as {"error": code}. Anything that is not an AppError
// is logged and reported as an opaque internal error.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: apperrors.InternalErrorMessage})
		return
	}
	c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
}

// bindJSON decodes the body into req and runs its validation rules. It writes
// the error response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidRequestBody})
		return false
	}
	if err := dto.Validate(req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		respondError(c, apperrors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}
