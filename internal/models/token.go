package models

import "time"

// AccessToken is the stored side of an opaque bearer token issued at login.
// Only the SHA-256 digest of the plaintext is persisted; the plaintext is
// returned to the client exactly once and cannot be recovered from this row.
type AccessToken struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
