package repositories

import (
	"fmt"

	"tienda/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{
		db: db,
	}
}

// Create persists a new access token.
func (r *GORMTokenRepository) Create(token *models.AccessToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}
	return nil
}

// GetByHash retrieves an access token by the digest of its plaintext.
func (r *GORMTokenRepository) GetByHash(hash string) (*models.AccessToken, error) {
	var token models.AccessToken
	if err := r.db.First(&token, "token_hash = ?", hash).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("access token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}
	return &token, nil
}

// DeleteByHash removes an access token by the digest of its plaintext.
func (r *GORMTokenRepository) DeleteByHash(hash string) error {
	res := r.db.Delete(&models.AccessToken{}, "token_hash = ?", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to delete access token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("access token: %w", ErrNotFound)
	}
	return nil
}
