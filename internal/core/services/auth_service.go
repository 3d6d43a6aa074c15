package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/utils"
	"github.com/google/uuid"
)

// authService owns login, logout and refresh-token rotation.
//
// Refresh tokens are signed JWTs that are also persisted as sessions (under
// their SHA-256 fingerprint). A refresh succeeds only when both the signature
// and the session row check out, so deleting the row revokes the token.
type authService struct {
	BaseService
	userRepo          portsrepo.UserRepositoryFacade
	sessionRepo       portsrepo.SessionRepository
	txManager         portsrepo.TransactionManager
	hashing           portssvc.HashingSvc
	tokens            portssvc.TokenSvcFacade
	emailVerification portssvc.EmailVerificationSvc
	oauth             portssvc.OAuthSvc
}

func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	sessionRepo portsrepo.SessionRepository,
	txManager portsrepo.TransactionManager,
	hashing portssvc.HashingSvc,
	tokens portssvc.TokenSvcFacade,
	emailVerification portssvc.EmailVerificationSvc,
	oauth portssvc.OAuthSvc,
	opts ...Option,
) portssvc.AuthSvcFacade {
	return &authService{
		BaseService:       newBaseService(opts...),
		userRepo:          userRepo,
		sessionRepo:       sessionRepo,
		txManager:         txManager,
		hashing:           hashing,
		tokens:            tokens,
		emailVerification: emailVerification,
		oauth:             oauth,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if req.Password != req.PasswordConfirmation {
		return nil, apperrors.ErrPasswordDoNotMatch
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to check email availability")
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyInUse
	}
	existing, err = s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to check username availability")
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameAlreadyInUse
	}

	digest, err := s.hashing.Hash(ctx, req.Password)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to hash password")
	}

	user := &domain.User{
		UserID:   uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: digest,
		Verified: false,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, s.classify(ctx, duplicateUserError(err), "Failed to create user")
	}
	s.LogInfo(ctx, "User signed up", slog.String("user_id", user.UserID))

	if err := s.emailVerification.Issue(ctx, user.UserID, user.Email); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to look up user for login")
	}
	if user == nil {
		return nil, apperrors.ErrInvalidEmail
	}

	if !user.Verified {
		if err := s.emailVerification.ResendIfStale(ctx, user); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrEmailNotVerified
	}

	if !user.HasPassword() {
		return nil, apperrors.ErrWrongPassword
	}
	ok, err := s.hashing.Verify(ctx, user.Password, password)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to verify password", slog.String("user_id", user.UserID))
	}
	if !ok {
		return nil, apperrors.ErrWrongPassword
	}

	pair, err := s.startSession(ctx, s.sessionRepo, user.UserID)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to start session", slog.String("user_id", user.UserID))
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &domain.AuthResult{User: user, Tokens: *pair}, nil
}

func (s *authService) LoginWithOAuth(ctx context.Context, data domain.OAuthData) (*domain.AuthResult, error) {
	user, err := s.oauth.CreateOrRetrieveUser(ctx, data)
	if err != nil {
		return nil, err
	}
	pair, err := s.startSession(ctx, s.sessionRepo, user.UserID)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to start session", slog.String("user_id", user.UserID))
	}
	s.LogInfo(ctx, "User logged in with OAuth", slog.String("user_id", user.UserID), slog.String("provider", data.ProviderID))
	return &domain.AuthResult{User: user, Tokens: *pair}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	subject, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		s.LogDebug(ctx, "Refresh token rejected", slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidRefreshToken
	}

	fingerprint := utils.HashRefreshToken(refreshToken)
	var pair *domain.TokenPair
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		session, err := repos.SessionRepo.FindSessionByToken(ctx, fingerprint)
		if err != nil {
			return err
		}
		if session == nil || session.IsExpired(s.Now()) || session.UserID != subject {
			return apperrors.ErrInvalidRefreshToken
		}

		deleted, err := repos.SessionRepo.DeleteSession(ctx, fingerprint)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperrors.ErrInvalidRefreshToken
		}

		pair, err = s.startSession(ctx, repos.SessionRepo, session.UserID)
		return err
	})
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to rotate refresh token", slog.String("user_id", subject))
	}
	return pair, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	deleted, err := s.sessionRepo.DeleteSession(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		return s.classify(ctx, err, "Failed to delete session")
	}
	s.LogInfo(ctx, "Session logged out", slog.Int64("sessions_revoked", deleted))
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	deleted, err := s.sessionRepo.DeleteAllSessionsForUser(ctx, userID)
	if err != nil {
		return s.classify(ctx, err, "Failed to delete sessions", slog.String("user_id", userID))
	}
	s.LogInfo(ctx, "All sessions logged out", slog.String("user_id", userID), slog.Int64("sessions_revoked", deleted))
	return nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	purged, err := s.sessionRepo.DeleteExpiredSessions(ctx, s.Now())
	if err != nil {
		return 0, s.classify(ctx, err, "Failed to purge expired sessions")
	}
	if purged > 0 {
		s.LogInfo(ctx, "Expired sessions purged", slog.Int64("sessions_purged", purged))
	}
	return purged, nil
}

// startSession mints a token pair and persists the refresh half through repo,
// which may be bound to a transaction.
func (s *authService) startSession(ctx context.Context, repo portsrepo.SessionRepository, userID string) (*domain.TokenPair, error) {
	accessToken, accessExpiresAt, err := s.tokens.GenerateAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		SessionID: uuid.NewString(),
		Token:     utils.HashRefreshToken(refreshToken),
		UserID:    userID,
		ExpiresAt: refreshExpiresAt,
	}
	if err := repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

// duplicateUserError maps a unique-constraint violation on users to its client code.
func duplicateUserError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		return apperrors.ErrEmailAlreadyInUse
	case errors.Is(err, apperrors.ErrDuplicateUsername):
		return apperrors.ErrUsernameAlreadyInUse
	default:
		return err
	}
}
