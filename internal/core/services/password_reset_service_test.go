package services_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
	"github.com/stretchr/testify/suite"
)

type PasswordResetServiceTestSuite struct {
	flowSuite
}

func TestPasswordResetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PasswordResetServiceTestSuite))
}

func resetReq(password, confirmation string) dto.ResetPasswordRequest {
	return dto.ResetPasswordRequest{NewPassword: password, ConfirmNewPassword: confirmation, Email: "a@x.com"}
}

func (s *PasswordResetServiceTestSuite) TestResetScenario() {
	alice := s.verifiedUser("a@x.com", "alice", "secret12")

	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	code := s.resetCode()
	s.Regexp(regexp.MustCompile(`^[0-9]{6}$`), code)

	s.Require().NoError(s.svc.PasswordReset.ValidateToken(s.ctx, code, "a@x.com"))
	s.Require().NoError(s.svc.PasswordReset.ValidateToken(s.ctx, code, "a@x.com"), "validation does not consume")

	userID, err := s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass1", "newpass1"))
	s.Require().NoError(err)
	s.Equal(alice.UserID, userID)

	err = s.svc.PasswordReset.ValidateToken(s.ctx, code, "a@x.com")
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredToken)
	_, err = s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass2", "newpass2"))
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredToken)

	_, err = s.svc.Auth.Login(s.ctx, "a@x.com", "secret12")
	s.ErrorIs(err, apperrors.ErrWrongPassword)
	s.login("a@x.com", "newpass1")

	notice, ok := s.mailer.last(portssvc.TemplatePasswordChanged)
	s.Require().True(ok)
	s.Equal("a@x.com", notice.To)
}

func (s *PasswordResetServiceTestSuite) TestResetRevokesAllSessions() {
	user := s.verifiedUser("a@x.com", "alice", "secret12")
	var refreshTokens []string
	for i := 0; i < 3; i++ {
		refreshTokens = append(refreshTokens, s.login("a@x.com", "secret12").Tokens.RefreshToken)
	}
	s.Equal(3, s.store.sessionCount(user.UserID))

	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	_, err := s.svc.PasswordReset.ResetPassword(s.ctx, s.resetCode(), resetReq("newpass1", "newpass1"))
	s.Require().NoError(err)

	for _, tok := range refreshTokens {
		_, err := s.svc.Auth.Refresh(s.ctx, tok)
		s.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
	}
	s.Equal(0, s.store.sessionCount(user.UserID))
}

func (s *PasswordResetServiceTestSuite) TestResetFailsWhenSessionRevocationFails() {
	user := s.verifiedUser("a@x.com", "alice", "secret12")
	refresh := s.login("a@x.com", "secret12").Tokens.RefreshToken

	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	code := s.resetCode()

	s.store.deleteAllSessionsErr = errStoreDown
	_, err := s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass1", "newpass1"))
	s.Require().Error(err)
	s.True(apperrors.IsInternal(err))
	s.store.deleteAllSessionsErr = nil

	// Everything rolled back: old password, old session and the code are all intact.
	s.True(s.store.hasReset("a@x.com"))
	s.login("a@x.com", "secret12")
	_, err = s.svc.Auth.Refresh(s.ctx, refresh)
	s.NoError(err)
	s.Equal(0, s.mailer.count(portssvc.TemplatePasswordChanged))

	_, err = s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass1", "newpass1"))
	s.NoError(err)
	s.Equal(0, s.store.sessionCount(user.UserID))
}

func (s *PasswordResetServiceTestSuite) TestRequestReset_UnknownEmail() {
	err := s.svc.PasswordReset.RequestReset(s.ctx, "ghost@x.com")
	s.ErrorIs(err, apperrors.ErrNoUserWithThisEmail)
	s.Equal(0, s.mailer.count(portssvc.TemplateResetPassword))
}

func (s *PasswordResetServiceTestSuite) TestResetPassword_Mismatch() {
	s.verifiedUser("a@x.com", "alice", "secret12")
	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	code := s.resetCode()

	_, err := s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass1", "newpass2"))
	s.ErrorIs(err, apperrors.ErrPasswordDoNotMatch)

	s.NoError(s.svc.PasswordReset.ValidateToken(s.ctx, code, "a@x.com"), "a rejected attempt does not burn the code")
}

func (s *PasswordResetServiceTestSuite) TestResetPassword_WrongCodeOrEmail() {
	s.verifiedUser("a@x.com", "alice", "secret12")
	s.verifiedUser("b@x.com", "bob", "secret12")
	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	code := s.resetCode()

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	s.ErrorIs(s.svc.PasswordReset.ValidateToken(s.ctx, wrong, "a@x.com"), apperrors.ErrInvalidOrExpiredToken)
	s.ErrorIs(s.svc.PasswordReset.ValidateToken(s.ctx, code, "b@x.com"), apperrors.ErrInvalidOrExpiredToken)
	s.NoError(s.svc.PasswordReset.ValidateToken(s.ctx, code, "A@X.COM"))
}

func (s *PasswordResetServiceTestSuite) TestCodeExpiry() {
	s.verifiedUser("a@x.com", "alice", "secret12")
	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	code := s.resetCode()

	s.clock.Advance(15*time.Minute - time.Second)
	s.NoError(s.svc.PasswordReset.ValidateToken(s.ctx, code, "a@x.com"), "one second before expiry")

	s.clock.Advance(time.Second)
	s.ErrorIs(s.svc.PasswordReset.ValidateToken(s.ctx, code, "a@x.com"), apperrors.ErrInvalidOrExpiredToken)
	_, err := s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass1", "newpass1"))
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredToken)
}

func (s *PasswordResetServiceTestSuite) TestLatestRequestWins() {
	s.verifiedUser("a@x.com", "alice", "secret12")

	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	first := s.resetCode()
	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	second := s.resetCode()

	if first != second {
		s.ErrorIs(s.svc.PasswordReset.ValidateToken(s.ctx, first, "a@x.com"), apperrors.ErrInvalidOrExpiredToken)
	}
	s.NoError(s.svc.PasswordReset.ValidateToken(s.ctx, second, "a@x.com"))
}

func (s *PasswordResetServiceTestSuite) TestNoticeFailureKeepsReset() {
	s.verifiedUser("a@x.com", "alice", "secret12")
	s.Require().NoError(s.svc.PasswordReset.RequestReset(s.ctx, "a@x.com"))
	code := s.resetCode()

	s.failMail(errors.New("smtp: 421 service not available"))
	_, err := s.svc.PasswordReset.ResetPassword(s.ctx, code, resetReq("newpass1", "newpass1"))
	s.NoError(err)
	s.login("a@x.com", "newpass1")
}
