package services

import (
	"context"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
)

// Email template names understood by every EmailSender.
const (
	TemplateEmailVerification = "email-verification"
	TemplateResetPassword     = "reset-password"
	TemplatePasswordChanged   = "password-changed"
)

// EmailSender delivers templated mail. A returned error means the message was not sent.
type EmailSender interface {
	Send(ctx context.Context, to string, templateName string, props map[string]any) error
}

// EmailVerificationSvc issues and consumes email confirmation tokens.
type EmailVerificationSvc interface {
	Issue(ctx context.Context, userID, email string) error
	Consume(ctx context.Context, userID, token string) error
	// ResendIfStale issues a new token only when the user has no valid one.
	ResendIfStale(ctx context.Context, user *domain.User) error
}
