package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
	"github.com/google/uuid"
)

type emailVerificationService struct {
	BaseService
	cfg              *config.Config
	verificationRepo portsrepo.EmailVerificationRepository
	txManager        portsrepo.TransactionManager
	issuer           portssvc.TokenIssuerSvc
	mailer           portssvc.EmailSender
}

func NewEmailVerificationService(
	cfg *config.Config,
	verificationRepo portsrepo.EmailVerificationRepository,
	txManager portsrepo.TransactionManager,
	issuer portssvc.TokenIssuerSvc,
	mailer portssvc.EmailSender,
	opts ...Option,
) portssvc.EmailVerificationSvc {
	return &emailVerificationService{
		BaseService:      newBaseService(opts...),
		cfg:              cfg,
		verificationRepo: verificationRepo,
		txManager:        txManager,
		issuer:           issuer,
		mailer:           mailer,
	}
}

// VerificationLink builds the URL a user follows to confirm an address.
func VerificationLink(origin, userID, token string) string {
	return fmt.Sprintf("%s/api/v1/auth/verify/%s/%s", strings.TrimRight(origin, "/"), userID, token)
}

func (s *emailVerificationService) Issue(ctx context.Context, userID, email string) error {
	issued, err := s.issuer.GenerateWithExpiryAndHash(ctx, s.cfg.EmailVerificationTokenLength, s.cfg.EmailVerificationTokenTTL, portssvc.AlphabetAlphanumeric)
	if err != nil {
		return s.classify(ctx, err, "Failed to generate email verification token", slog.String("user_id", userID))
	}

	record := &domain.EmailVerification{
		ID:             uuid.NewString(),
		UserID:         userID,
		RequestedEmail: email,
		HashedToken:    issued.HashedToken,
		ExpiresAt:      issued.ExpiresAt,
	}
	if err := s.verificationRepo.CreateEmailVerification(ctx, record); err != nil {
		return s.classify(ctx, err, "Failed to persist email verification", slog.String("user_id", userID))
	}

	props := map[string]any{
		"email":            email,
		"link":             VerificationLink(s.cfg.APIOrigin, userID, issued.Token),
		"expiresInMinutes": int(s.cfg.EmailVerificationTokenTTL.Minutes()),
	}
	if err := s.mailer.Send(ctx, email, portssvc.TemplateEmailVerification, props); err != nil {
		return s.classify(ctx, err, "Failed to send verification email", slog.String("user_id", userID))
	}

	s.LogInfo(ctx, "Email verification issued", slog.String("user_id", userID), slog.Time("expires_at", issued.ExpiresAt))
	return nil
}

func (s *emailVerificationService) Consume(ctx context.Context, userID, token string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		record, err := repos.EmailVerificationRepo.FindValidEmailVerification(ctx, userID, s.Now())
		if err != nil {
			return err
		}
		if record == nil {
			return apperrors.ErrInvalidToken
		}

		ok, err := s.issuer.VerifyHashedToken(ctx, record.HashedToken, token)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidToken
		}

		deleted, err := repos.EmailVerificationRepo.DeleteEmailVerification(ctx, record.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			// Consumed concurrently by another request.
			return apperrors.ErrInvalidToken
		}

		verified := true
		email := record.RequestedEmail
		user, err := repos.UserRepo.UpdateUser(ctx, userID, domain.UserUpdate{Email: &email, Verified: &verified})
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicateEmail) {
				return apperrors.ErrEmailAlreadyInUse
			}
			return err
		}
		if user == nil {
			return apperrors.ErrInvalidToken
		}
		return nil
	})
	if err != nil {
		return s.classify(ctx, err, "Failed to consume email verification", slog.String("user_id", userID))
	}

	s.LogInfo(ctx, "Email verified", slog.String("user_id", userID))
	return nil
}

func (s *emailVerificationService) ResendIfStale(ctx context.Context, user *domain.User) error {
	record, err := s.verificationRepo.FindValidEmailVerification(ctx, user.UserID, s.Now())
	if err != nil {
		return s.classify(ctx, err, "Failed to look up email verification", slog.String("user_id", user.UserID))
	}
	if record != nil {
		s.LogDebug(ctx, "Valid email verification exists, not resending", slog.String("user_id", user.UserID))
		return nil
	}
	return s.Issue(ctx, user.UserID, user.Email)
}
