package repository

import authdomain "dealflow-backend/internal/auth/domain"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	// UpdateGoogleTokens persists refreshed calendar OAuth tokens
	UpdateGoogleTokens(userID, accessToken, refreshToken string) error
	// FindSyncEligible returns users that hold a Google refresh token and
	// can therefore take part in the scheduled calendar sync batch
	FindSyncEligible() ([]*authdomain.User, error)

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}
