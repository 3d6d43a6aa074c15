package services

import (
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
)

// NewServiceContainer wires every service once, leaf to root.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer portssvc.EmailSender, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Hashing = NewHashingService(opts...)
	container.TokenIssuer = NewTokenIssuerService(container.Hashing, opts...)
	container.TokenService = NewTokenService(cfg, opts...)

	container.EmailVerification = NewEmailVerificationService(
		cfg,
		repos.EmailVerificationRepo,
		repos.TxManager,
		container.TokenIssuer,
		mailer,
		opts...,
	)
	container.PasswordReset = NewPasswordResetService(
		cfg,
		repos.UserRepo,
		repos.PasswordResetRepo,
		repos.TxManager,
		container.TokenIssuer,
		container.Hashing,
		mailer,
		opts...,
	)
	container.OAuth = NewOAuthService(repos.TxManager, container.TokenIssuer, opts...)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	container.Auth = NewAuthService(
		repos.UserRepo,
		repos.SessionRepo,
		repos.TxManager,
		container.Hashing,
		container.TokenService,
		container.EmailVerification,
		container.OAuth,
		opts...,
	)
	container.User = NewUserService(repos.UserRepo, container.EmailVerification, opts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.HashingSvc                  = (*hashingService)(nil)
	_ portssvc.TokenIssuerSvc              = (*tokenIssuerService)(nil)
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.EmailVerificationSvc        = (*emailVerificationService)(nil)
	_ portssvc.PasswordResetSvc            = (*passwordResetService)(nil)
	_ portssvc.OAuthSvc                    = (*oauthService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
	_ portssvc.AuthSvcFacade               = (*authService)(nil)
	_ portssvc.UserSvcFacade               = (*userService)(nil)
)
