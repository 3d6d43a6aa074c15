package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
	"github.com/google/uuid"
)

type passwordResetService struct {
	BaseService
	cfg       *config.Config
	userRepo  portsrepo.UserReader
	resetRepo portsrepo.PasswordResetRepository
	txManager portsrepo.TransactionManager
	issuer    portssvc.TokenIssuerSvc
	hashing   portssvc.HashingSvc
	mailer    portssvc.EmailSender
}

func NewPasswordResetService(
	cfg *config.Config,
	userRepo portsrepo.UserReader,
	resetRepo portsrepo.PasswordResetRepository,
	txManager portsrepo.TransactionManager,
	issuer portssvc.TokenIssuerSvc,
	hashing portssvc.HashingSvc,
	mailer portssvc.EmailSender,
	opts ...Option,
) portssvc.PasswordResetSvc {
	return &passwordResetService{
		BaseService: newBaseService(opts...),
		cfg:         cfg,
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		txManager:   txManager,
		issuer:      issuer,
		hashing:     hashing,
		mailer:      mailer,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return s.classify(ctx, err, "Failed to look up user for password reset")
	}
	if user == nil {
		return apperrors.ErrNoUserWithThisEmail
	}

	issued, err := s.issuer.GenerateWithExpiryAndHash(ctx, s.cfg.PasswordResetTokenLength, s.cfg.PasswordResetTokenTTL, portssvc.AlphabetNumeric)
	if err != nil {
		return s.classify(ctx, err, "Failed to generate password reset code", slog.String("user_id", user.UserID))
	}

	// Replaces any outstanding code for this address; the last request wins.
	record := &domain.PasswordReset{
		ID:          uuid.NewString(),
		Email:       user.Email,
		HashedToken: issued.HashedToken,
		ExpiresAt:   issued.ExpiresAt,
	}
	if err := s.resetRepo.UpsertPasswordReset(ctx, record); err != nil {
		return s.classify(ctx, err, "Failed to persist password reset", slog.String("user_id", user.UserID))
	}

	props := map[string]any{
		"email":            user.Email,
		"username":         user.Username,
		"code":             issued.Token,
		"expiresInMinutes": int(s.cfg.PasswordResetTokenTTL.Minutes()),
	}
	if err := s.mailer.Send(ctx, user.Email, portssvc.TemplateResetPassword, props); err != nil {
		return s.classify(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
	}

	s.LogInfo(ctx, "Password reset requested", slog.String("user_id", user.UserID))
	return nil
}

func (s *passwordResetService) ValidateToken(ctx context.Context, token, email string) error {
	_, err := s.validate(ctx, s.resetRepo, token, email)
	return s.classify(ctx, err, "Failed to validate password reset code")
}

// validate returns the matching, unexpired record or ErrInvalidOrExpiredToken.
func (s *passwordResetService) validate(ctx context.Context, repo portsrepo.PasswordResetRepository, token, email string) (*domain.PasswordReset, error) {
	record, err := repo.FindValidPasswordReset(ctx, email, s.Now())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}
	ok, err := s.issuer.VerifyHashedToken(ctx, record.HashedToken, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}
	return record, nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token string, req dto.ResetPasswordRequest) (string, error) {
	if _, err := s.validate(ctx, s.resetRepo, token, req.Email); err != nil {
		return "", s.classify(ctx, err, "Failed to validate password reset code")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return "", s.classify(ctx, err, "Failed to look up user for password reset")
	}
	if user == nil {
		return "", apperrors.ErrNoUserWithThisEmail
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return "", apperrors.ErrPasswordDoNotMatch
	}

	// Hash before opening the transaction to keep the locked section short.
	digest, err := s.hashing.Hash(ctx, req.NewPassword)
	if err != nil {
		return "", s.classify(ctx, err, "Failed to hash new password", slog.String("user_id", user.UserID))
	}

	var revoked int64
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		// Re-check under lock: a concurrent reset may have consumed or replaced the code.
		record, err := s.validate(ctx, repos.PasswordResetRepo, token, req.Email)
		if err != nil {
			return err
		}
		deleted, err := repos.PasswordResetRepo.DeletePasswordReset(ctx, record.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperrors.ErrInvalidOrExpiredToken
		}

		updated, err := repos.UserRepo.UpdateUser(ctx, user.UserID, domain.UserUpdate{Password: &digest})
		if err != nil {
			return err
		}
		if updated == nil {
			return apperrors.ErrNoUserWithThisEmail
		}

		revoked, err = repos.SessionRepo.DeleteAllSessionsForUser(ctx, user.UserID)
		return err
	})
	if err != nil {
		return "", s.classify(ctx, err, "Failed to reset password", slog.String("user_id", user.UserID))
	}

	s.LogInfo(ctx, "Password reset", slog.String("user_id", user.UserID), slog.Int64("sessions_revoked", revoked))

	// The reset is committed; a lost notice must not undo it.
	props := map[string]any{"email": user.Email, "username": user.Username}
	if err := s.mailer.Send(ctx, user.Email, portssvc.TemplatePasswordChanged, props); err != nil {
		s.LogError(ctx, err, "Failed to send password changed notice", slog.String("user_id", user.UserID))
	}
	return user.UserID, nil
}
