package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	RefreshTokenRepo RefreshTokenRepository
	PostRepo         PostRepositoryFacade
	OrganizationRepo OrganizationRepository
	OAuthStateStore  OAuthStateStore
}
