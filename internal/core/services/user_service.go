package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/SscSPs/taskmgr_backend/internal/dto"
)

type userService struct {
	BaseService
	userRepo          portsrepo.UserRepositoryFacade
	emailVerification portssvc.EmailVerificationSvc
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, emailVerification portssvc.EmailVerificationSvc, opts ...Option) portssvc.UserSvcFacade {
	return &userService{
		BaseService:       newBaseService(opts...),
		userRepo:          userRepo,
		emailVerification: emailVerification,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to get user by username")
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if req.Username != nil {
		other, err := s.userRepo.FindUserByUsername(ctx, *req.Username)
		if err != nil {
			return nil, s.classify(ctx, err, "Failed to check username availability", slog.String("user_id", userID))
		}
		if other != nil && other.UserID != userID {
			return nil, apperrors.ErrUsernameAlreadyInUse
		}
	}

	user, err := s.userRepo.UpdateUser(ctx, userID, domain.UserUpdate{
		Username: req.Username,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return nil, s.classify(ctx, duplicateUserError(err), "Failed to update user", slog.String("user_id", userID))
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	s.LogInfo(ctx, "User profile updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) RequestEmailChange(ctx context.Context, userID string, newEmail string) error {
	if err := dto.Validate(dto.ChangeEmailRequest{Email: newEmail}); err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if strings.EqualFold(user.Email, newEmail) {
		return apperrors.ErrEmailAlreadyInUse
	}

	other, err := s.userRepo.FindUserByEmail(ctx, newEmail)
	if err != nil {
		return s.classify(ctx, err, "Failed to check email availability", slog.String("user_id", userID))
	}
	if other != nil {
		return apperrors.ErrEmailAlreadyInUse
	}

	return s.emailVerification.Issue(ctx, userID, newEmail)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return s.classify(ctx, err, "Failed to delete user", slog.String("user_id", userID))
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
