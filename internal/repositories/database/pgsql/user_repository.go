package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	"github.com/SscSPs/taskmgr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/taskmgr_backend/internal/models"
	"github.com/SscSPs/taskmgr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxUserRepository struct {
	BaseRepository
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// A missing email is stored as NULL and read back as "".
const userColumns = `user_id, username, COALESCE(email, '') AS email, password, verified, avatar, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Username, &m.Email, &m.PasswordHash, &m.Verified, &m.Avatar, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) findUserBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, value))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserBy(ctx, "user_id", userID)
}

// FindUserByEmail relies on the citext column for case-insensitive matching.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserBy(ctx, "email", email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserBy(ctx, "username", username)
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)
	query := `
        INSERT INTO users (user_id, username, email, password, verified, avatar)
        VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
        RETURNING created_at, updated_at;
    `
	err := r.db.QueryRow(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.Verified,
		m.Avatar,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.UserID, mapUniqueViolation(err))
	}
	return nil
}

// UpdateUser leaves columns whose update field is nil untouched.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	query := `
        UPDATE users SET
            username = COALESCE($2, username),
            email = COALESCE($3, email),
            password = COALESCE($4, password),
            verified = COALESCE($5, verified),
            avatar = COALESCE($6, avatar),
            updated_at = now()
        WHERE user_id = $1
        RETURNING ` + userColumns + `;
    `
	user, err := scanUser(r.db.QueryRow(ctx, query,
		userID,
		update.Username,
		update.Email,
		update.Password,
		update.Verified,
		update.Avatar,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, mapUniqueViolation(err))
	}
	return user, nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found for deletion: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
