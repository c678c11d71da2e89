package pgsql

import (
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. The OAuth state store
// lives outside Postgres and is set by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, stateStore portsrepo.OAuthStateStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		RefreshTokenRepo: newPgxRefreshTokenRepository(dbPool),
		PostRepo:         newPgxPostRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		OAuthStateStore:  stateStore,
	}
}
