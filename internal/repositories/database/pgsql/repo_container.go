package pgsql

import (
	portsrepo "github.com/SscSPs/taskmgr_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository against db, typically a *pgxpool.Pool.
func NewRepositoryProvider(db TxBeginner) portsrepo.RepositoryProvider {
	return newRepositories(db, newPgxTxManager(db))
}

func newRepositories(db DBTX, txManager portsrepo.TransactionManager) portsrepo.RepositoryProvider {
	base := BaseRepository{db: db}
	return portsrepo.RepositoryProvider{
		UserRepo:              &PgxUserRepository{BaseRepository: base},
		SessionRepo:           &PgxSessionRepository{BaseRepository: base},
		EmailVerificationRepo: &PgxEmailVerificationRepository{BaseRepository: base},
		PasswordResetRepo:     &PgxPasswordResetRepository{BaseRepository: base},
		OAuthRepo:             &PgxOAuthRepository{BaseRepository: base},
		TxManager:             txManager,
	}
}
