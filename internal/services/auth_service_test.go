package services_test

import (
	"fmt"
	"testing"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) EmailTaken(email, excludeID string) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockTokenRepository is a mock implementation of repositories.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(token *models.AccessToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetByHash(hash string) (*models.AccessToken, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessToken), args.Error(1)
}

func (m *MockTokenRepository) DeleteByHash(hash string) error {
	args := m.Called(hash)
	return args.Error(0)
}

// channelMailer records published events so the fire-and-forget goroutine
// can be observed from the test.
type channelMailer struct {
	events chan map[string]interface{}
}

func (f *channelMailer) PublishUserRegistered(event map[string]interface{}) error {
	f.events <- event
	return nil
}

func TestAuthService_Register(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	mailer := &channelMailer{events: make(chan map[string]interface{}, 1)}
	authService := services.NewAuthService(mockUsers, mockTokens, mailer, time.Hour)

	user := &models.User{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret123",
	}

	mockUsers.On("EmailTaken", "ana@x.com", "").Return(false, nil).Once()
	mockUsers.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.Register(user)
	assert.NoError(t, err)
	// The stored password must be a bcrypt hash of the plaintext.
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	mockUsers.AssertExpectations(t)

	// The welcome mail event is published asynchronously.
	select {
	case event := <-mailer.events:
		assert.Equal(t, "user.registered", event["event"])
		assert.Equal(t, "ana@x.com", event["email"])
	case <-time.After(2 * time.Second):
		t.Fatal("welcome mail event was never published")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens, nil, time.Hour)

	mockUsers.On("EmailTaken", "ana@x.com", "").Return(true, nil).Once()

	err := authService.Register(&models.User{Name: "Ana", Email: "ana@x.com", Password: "secret123"})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	mockUsers.AssertNotCalled(t, "Create", mock.Anything)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens, nil, time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: string(hashedPassword),
	}

	// Successful login issues a token.
	mockUsers.On("GetByEmail", "ana@x.com").Return(user, nil).Once()
	mockTokens.On("Create", mock.AnythingOfType("*models.AccessToken")).Return(nil).Once()

	token, err := authService.Login("ana@x.com", "secret123")
	assert.NoError(t, err)
	assert.Len(t, token, 64) // 32 random bytes, hex encoded
	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)

	// Wrong password and unknown email fail with the same generic error.
	mockUsers.On("GetByEmail", "ana@x.com").Return(user, nil).Once()
	_, errWrongPassword := authService.Login("ana@x.com", "nope")
	assert.ErrorIs(t, errWrongPassword, services.ErrInvalidCredentials)

	mockUsers.On("GetByEmail", "nobody@x.com").
		Return(nil, fmt.Errorf("user with email nobody@x.com: %w", repositories.ErrNotFound)).Once()
	_, errUnknownEmail := authService.Login("nobody@x.com", "secret123")
	assert.ErrorIs(t, errUnknownEmail, services.ErrInvalidCredentials)

	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	mockUsers.AssertExpectations(t)
}

func TestAuthService_TokenLifecycle(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens, nil, time.Hour)

	user := &models.User{ID: "user-123", Name: "Ana", Email: "ana@x.com"}

	var stored *models.AccessToken
	mockTokens.On("Create", mock.AnythingOfType("*models.AccessToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*models.AccessToken)
		}).Return(nil).Once()

	plaintext, err := authService.IssueToken(user)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, "user-123", stored.UserID)
	assert.NotEqual(t, plaintext, stored.TokenHash) // only the digest is persisted
	assert.True(t, stored.ExpiresAt.After(time.Now()))

	// Resolving the plaintext finds the stored row and loads the owner.
	mockTokens.On("GetByHash", stored.TokenHash).Return(stored, nil).Once()
	mockUsers.On("GetByID", "user-123").Return(user, nil).Once()
	resolved, err := authService.ResolveToken(plaintext)
	assert.NoError(t, err)
	assert.Equal(t, user, resolved)

	// An unknown token is unauthenticated.
	mockTokens.On("GetByHash", mock.AnythingOfType("string")).
		Return(nil, fmt.Errorf("access token: %w", repositories.ErrNotFound)).Once()
	_, err = authService.ResolveToken("deadbeef")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Revoking deletes by digest; resolving afterwards would miss the row.
	mockTokens.On("DeleteByHash", stored.TokenHash).Return(nil).Once()
	assert.NoError(t, authService.RevokeToken(plaintext))

	mockTokens.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_ResolveExpiredToken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens, nil, time.Hour)

	var stored *models.AccessToken
	mockTokens.On("Create", mock.AnythingOfType("*models.AccessToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*models.AccessToken)
		}).Return(nil).Once()

	plaintext, err := authService.IssueToken(&models.User{ID: "user-123"})
	assert.NoError(t, err)

	stored.ExpiresAt = time.Now().Add(-time.Minute)
	mockTokens.On("GetByHash", stored.TokenHash).Return(stored, nil).Once()
	mockTokens.On("DeleteByHash", stored.TokenHash).Return(nil).Once()

	_, err = authService.ResolveToken(plaintext)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	mockTokens.AssertExpectations(t)
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenRepository)
	authService := services.NewAuthService(mockUsers, mockTokens, nil, time.Hour)

	user := &models.User{ID: "user-123", Name: "Ana", Email: "ana@x.com"}
	newName := "Ana María"

	// Name-only update does not touch the email check.
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err := authService.UpdateProfile(user, services.ProfileUpdate{Name: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "ana@x.com", updated.Email)
	mockUsers.AssertNotCalled(t, "EmailTaken", mock.Anything, mock.Anything)
	mockUsers.AssertExpectations(t)

	// Resubmitting the own email passes because the check excludes the user.
	ownEmail := "ana@x.com"
	mockUsers.On("EmailTaken", "ana@x.com", "user-123").Return(false, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	_, err = authService.UpdateProfile(user, services.ProfileUpdate{Email: &ownEmail})
	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)

	// An email held by someone else is rejected with a field error.
	takenEmail := "other@x.com"
	mockUsers.On("EmailTaken", "other@x.com", "user-123").Return(true, nil).Once()
	_, err = authService.UpdateProfile(user, services.ProfileUpdate{Email: &takenEmail})
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Equal(t, "ana@x.com", user.Email) // no partial write
	mockUsers.AssertExpectations(t)
}
