package repositories

import "tienda/internal/models"

// TokenRepository defines the interface for access-token data access.
// Tokens are addressed by the SHA-256 digest of their plaintext.
type TokenRepository interface {
	Create(token *models.AccessToken) error
	GetByHash(hash string) (*models.AccessToken, error)
	DeleteByHash(hash string) error
}
