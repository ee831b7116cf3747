package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Mailer publishes registration events for the mail worker to pick up.
// Implemented by pkg/rabbitmq.Client.
type Mailer interface {
	PublishUserRegistered(event map[string]interface{}) error
}

// AuthService handles registration, login, profile access, and the opaque
// bearer-token lifecycle. Tokens are random strings handed to the client
// once; only their SHA-256 digest is stored, and logout deletes the row.
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	mailer    Mailer
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. mailer may be nil, in which case
// registration skips the welcome-mail event.
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, mailer Mailer, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		tokenTTL:  tokenTTL,
	}
}

// Register hashes the user's password, persists the user, and publishes a
// fire-and-forget welcome-mail event. The user is not logged in.
func (s *AuthService) Register(user *models.User) error {
	taken, err := s.userRepo.EmailTaken(user.Email, "")
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return NewFieldError("email", "The email has already been taken.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	if s.mailer != nil {
		event := map[string]interface{}{
			"event":   "user.registered",
			"user_id": user.ID,
			"name":    user.Name,
			"email":   user.Email,
		}
		go func() {
			if err := s.mailer.PublishUserRegistered(event); err != nil {
				log.Printf("Failed to publish welcome mail event for %s: %v", user.Email, err)
			}
		}()
	}
	return nil
}

// Login verifies the credentials and issues a fresh token. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user)
}

// IssueToken generates a random bearer token for the user, persists its
// digest, and returns the plaintext. The plaintext is not recoverable later.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	plaintext := hex.EncodeToString(buf)

	token := &models.AccessToken{
		UserID:    user.ID,
		TokenHash: hashToken(plaintext),
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return plaintext, nil
}

// ResolveToken returns the user owning a live token. Unknown and expired
// tokens yield ErrInvalidToken; expired rows are deleted on sight.
func (s *AuthService) ResolveToken(plaintext string) (*models.User, error) {
	digest := hashToken(plaintext)
	token, err := s.tokenRepo.GetByHash(digest)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	if time.Now().After(token.ExpiresAt) {
		if err := s.tokenRepo.DeleteByHash(digest); err != nil {
			log.Printf("Failed to delete expired token: %v", err)
		}
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(token.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}
	return user, nil
}

// RevokeToken deletes the token so subsequent requests bearing it are
// unauthenticated.
func (s *AuthService) RevokeToken(plaintext string) error {
	if err := s.tokenRepo.DeleteByHash(hashToken(plaintext)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// ProfileUpdate holds the fields of a partial profile update. The password
// is not modifiable through this path.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// UpdateProfile merges the supplied fields onto the user and persists the
// result. Email uniqueness is checked excluding the user's own row, so
// resubmitting the current address is allowed.
func (s *AuthService) UpdateProfile(user *models.User, update ProfileUpdate) (*models.User, error) {
	if update.Email != nil {
		taken, err := s.userRepo.EmailTaken(*update.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			return nil, NewFieldError("email", "The email has already been taken.")
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func hashToken(plaintext string) string {
	digest := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:])
}
