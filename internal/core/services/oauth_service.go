package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

const (
	maxUsernameLength       = 32
	minUsernameLength       = 3
	usernameSuffixLength    = 4
	usernameAttempts        = 5
	oauthTransactionRetries = 2
)

type oauthService struct {
	BaseService
	txManager portsrepo.TransactionManager
	issuer    portssvc.TokenIssuerSvc
}

func NewOAuthService(txManager portsrepo.TransactionManager, issuer portssvc.TokenIssuerSvc, opts ...Option) portssvc.OAuthSvc {
	return &oauthService{
		BaseService: newBaseService(opts...),
		txManager:   txManager,
		issuer:      issuer,
	}
}

func (s *oauthService) CreateOrRetrieveUser(ctx context.Context, data domain.OAuthData) (*domain.User, error) {
	if data.ProviderID == "" || data.ProviderUserID == "" {
		return nil, s.classify(ctx, errors.New("oauth data without provider identity"), "Rejected OAuth login")
	}

	var user *domain.User
	var err error
	// A concurrent first login for the same identity loses the unique-key race;
	// the retry then resolves to the winner's user.
	for attempt := 0; attempt < oauthTransactionRetries; attempt++ {
		user, err = s.createOrRetrieve(ctx, data)
		if err == nil || !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
		s.LogDebug(ctx, "OAuth user creation raced, retrying", slog.String("provider", data.ProviderID))
	}
	if err != nil {
		return nil, s.classify(ctx, err, "Failed to create or retrieve OAuth user", slog.String("provider", data.ProviderID))
	}
	return user, nil
}

func (s *oauthService) createOrRetrieve(ctx context.Context, data domain.OAuthData) (*domain.User, error) {
	var result *domain.User
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		link, err := repos.OAuthRepo.FindOAuthLink(ctx, data.ProviderID, data.ProviderUserID)
		if err != nil {
			return err
		}
		if link != nil {
			user, err := repos.UserRepo.FindUserByID(ctx, link.UserID)
			if err != nil {
				return err
			}
			if user != nil {
				result = user
				return nil
			}
		}

		// Identities without an address can only ever be found through their link.
		if data.Email != "" {
			existing, err := repos.UserRepo.FindUserByEmail(ctx, data.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				linked, err := s.linkExisting(ctx, repos, existing, data)
				if err != nil {
					return err
				}
				result = linked
				return nil
			}
		}

		username, err := s.availableUsername(ctx, repos.UserRepo, usernameBase(data))
		if err != nil {
			return err
		}

		user := &domain.User{
			UserID:   uuid.NewString(),
			Username: username,
			Email:    data.Email,
			Password: "",
			Verified: true,
			Avatar:   data.Avatar,
		}
		if err := repos.UserRepo.CreateUser(ctx, user); err != nil {
			return err
		}
		if err := repos.OAuthRepo.CreateOAuthLink(ctx, domain.OAuthLink{
			ProviderID:     data.ProviderID,
			ProviderUserID: data.ProviderUserID,
			UserID:         user.UserID,
		}); err != nil {
			return err
		}
		s.LogInfo(ctx, "Created user from OAuth identity", slog.String("user_id", user.UserID), slog.String("provider", data.ProviderID))
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// linkExisting attaches the provider identity to a user found by email. An
// unverified account is claimed by the provider-verified owner of the address:
// it becomes verified and loses the password set by whoever signed up with it.
func (s *oauthService) linkExisting(ctx context.Context, repos portsrepo.RepositoryProvider, existing *domain.User, data domain.OAuthData) (*domain.User, error) {
	if err := repos.OAuthRepo.CreateOAuthLink(ctx, domain.OAuthLink{
		ProviderID:     data.ProviderID,
		ProviderUserID: data.ProviderUserID,
		UserID:         existing.UserID,
	}); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Linked OAuth identity to existing user", slog.String("user_id", existing.UserID), slog.String("provider", data.ProviderID))

	if existing.Verified {
		return existing, nil
	}

	verified := true
	noPassword := ""
	claimed, err := repos.UserRepo.UpdateUser(ctx, existing.UserID, domain.UserUpdate{
		Verified: &verified,
		Password: &noPassword,
	})
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		return nil, fmt.Errorf("user %s vanished while linking: %w", existing.UserID, apperrors.ErrNotFound)
	}
	s.LogInfo(ctx, "Unverified account claimed through OAuth, password cleared", slog.String("user_id", claimed.UserID), slog.String("provider", data.ProviderID))
	return claimed, nil
}

// availableUsername returns base if free, otherwise base with a short random suffix.
func (s *oauthService) availableUsername(ctx context.Context, users portsrepo.UserReader, base string) (string, error) {
	candidate := base
	for i := 0; i < usernameAttempts; i++ {
		existing, err := users.FindUserByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		suffix, err := s.issuer.Generate(usernameSuffixLength, portssvc.AlphabetNumeric)
		if err != nil {
			return "", err
		}
		trimmed := base
		if len(trimmed) > maxUsernameLength-usernameSuffixLength-1 {
			trimmed = trimmed[:maxUsernameLength-usernameSuffixLength-1]
		}
		candidate = trimmed + "_" + suffix
	}
	return "", fmt.Errorf("no free username derived from %q after %d attempts", base, usernameAttempts)
}

// usernameBase derives a username from the provider's display name, falling back
// to the local part of the email address.
func usernameBase(data domain.OAuthData) string {
	raw := data.Username
	if raw == "" {
		raw, _, _ = strings.Cut(data.Email, "@")
	}

	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "user"
	}
	if len(name) > maxUsernameLength {
		name = name[:maxUsernameLength]
	}
	for len(name) < minUsernameLength {
		name += "_"
	}
	return name
}
