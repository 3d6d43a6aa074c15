package services

// ServiceContainer holds instances of all the application services.
// It is built once in the composition root and handed to the handlers.
type ServiceContainer struct {
	Hashing            HashingSvc
	TokenIssuer        TokenIssuerSvc
	TokenService       TokenSvcFacade
	EmailVerification  EmailVerificationSvc
	PasswordReset      PasswordResetSvc
	OAuth              OAuthSvc
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Auth               AuthSvcFacade
	User               UserSvcFacade
}
