package services_test

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/core/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/SscSPs/taskmgr_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func testConfig() *config.Config {
	return &config.Config{
		APIOrigin:                    "http://api.test",
		AccessTokenSecret:            "access-secret",
		AccessTokenExpiryDuration:    15 * time.Minute,
		RefreshTokenSecret:           "refresh-secret",
		RefreshTokenExpiryDuration:   30 * 24 * time.Hour,
		JWTIssuer:                    "taskmgr-test",
		EmailVerificationTokenLength: 15,
		EmailVerificationTokenTTL:    30 * time.Minute,
		PasswordResetTokenLength:     6,
		PasswordResetTokenTTL:        15 * time.Minute,
	}
}

// flowSuite wires the real services against the in-memory store.
type flowSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Config
	store  *memStore
	clock  *fakeClock
	mailer *MockMailer
	svc    *portssvc.ServiceContainer
}

func (s *flowSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = testConfig()
	s.store = newMemStore()
	s.clock = newFakeClock()
	s.mailer = new(MockMailer)
	s.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.svc = services.NewServiceContainer(s.cfg, s.store.Provider(), s.mailer, services.WithClock(s.clock.Now))
}

// failMail makes every following delivery fail.
func (s *flowSuite) failMail(err error) {
	s.mailer.ExpectedCalls = nil
	s.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(err)
}

func (s *flowSuite) signup(email, username, password string) *domain.User {
	user, err := s.svc.Auth.Signup(s.ctx, dto.SignupRequest{
		Email:                email,
		Username:             username,
		Password:             password,
		PasswordConfirmation: password,
	})
	s.Require().NoError(err)
	return user
}

// verificationToken returns the plaintext token from the latest verification link.
func (s *flowSuite) verificationToken() string {
	mail, ok := s.mailer.last(portssvc.TemplateEmailVerification)
	s.Require().True(ok, "no verification email sent")
	link, ok := mail.Props["link"].(string)
	s.Require().True(ok)
	return link[strings.LastIndex(link, "/")+1:]
}

// resetCode returns the plaintext code from the latest reset email.
func (s *flowSuite) resetCode() string {
	mail, ok := s.mailer.last(portssvc.TemplateResetPassword)
	s.Require().True(ok, "no reset email sent")
	code, ok := mail.Props["code"].(string)
	s.Require().True(ok)
	return code
}

// verifiedUser signs up and confirms a user.
func (s *flowSuite) verifiedUser(email, username, password string) *domain.User {
	user := s.signup(email, username, password)
	s.Require().NoError(s.svc.EmailVerification.Consume(s.ctx, user.UserID, s.verificationToken()))
	return user
}

func (s *flowSuite) login(email, password string) *domain.AuthResult {
	result, err := s.svc.Auth.Login(s.ctx, email, password)
	s.Require().NoError(err)
	return result
}
