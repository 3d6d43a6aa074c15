package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesSentinelThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("consume: %w", apperrors.ErrInvalidToken)

	assert.ErrorIs(t, wrapped, apperrors.ErrInvalidToken)
	assert.NotErrorIs(t, wrapped, apperrors.ErrInvalidOrExpiredToken)
}

func TestNewInternalError_HidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := apperrors.NewInternalError(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, apperrors.InternalErrorMessage, err.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperrors.IsInternal(err))
}

func TestIsInternal(t *testing.T) {
	assert.False(t, apperrors.IsInternal(apperrors.ErrWrongPassword))
	assert.True(t, apperrors.IsInternal(errors.New("boom")))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := apperrors.AsAppError(fmt.Errorf("login: %w", apperrors.ErrEmailNotVerified))
	assert.True(t, ok)
	assert.Equal(t, "email-not-verified", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	_, ok = apperrors.AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
