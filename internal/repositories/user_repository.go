package repositories

import "tienda/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	// EmailTaken reports whether another user already holds the email.
	// excludeID, when non-empty, leaves that user's own row out of the
	// check so a profile update may resubmit the current address.
	EmailTaken(email, excludeID string) (bool, error)
}
