package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

func newTestCodec(t *testing.T, ttl time.Duration) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-secret", "HS256", ttl)
	require.NoError(t, err)
	return codec
}

func testUser(t *testing.T, hasher *auth.Hasher, password string) *model.User {
	t.Helper()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	return &model.User{
		ID:           1,
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestAuthService_AuthenticateByPassword(t *testing.T) {
	hasher := auth.NewHasher()
	alice := testUser(t, hasher, "secret123")

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "correct credentials",
			username: "alice",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewAuthService(repo, hasher, newTestCodec(t, 30*time.Minute), zap.NewNop())

			user, err := svc.AuthenticateByPassword(context.Background(), tt.username, tt.password)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", user.Username)
			}
			repo.AssertExpectations(t)
		})
	}
}

// Unknown user and bad password must be indistinguishable to callers.
func TestAuthService_NoCredentialOracle(t *testing.T) {
	hasher := auth.NewHasher()
	alice := testUser(t, hasher, "secret123")

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	svc := NewAuthService(repo, hasher, newTestCodec(t, 30*time.Minute), zap.NewNop())

	_, errBadPassword := svc.AuthenticateByPassword(context.Background(), "alice", "wrong")
	_, errNoUser := svc.AuthenticateByPassword(context.Background(), "ghost", "wrong")

	assert.Equal(t, errBadPassword, errNoUser)
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewHasher()
	codec := newTestCodec(t, 30*time.Minute)
	alice := testUser(t, hasher, "secret123")

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
	svc := NewAuthService(repo, hasher, codec, zap.NewNop())

	token, user, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	subject, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	hasher := auth.NewHasher()
	inactive := testUser(t, hasher, "secret123")
	inactive.IsActive = false

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(inactive, nil)
	svc := NewAuthService(repo, hasher, newTestCodec(t, 30*time.Minute), zap.NewNop())

	token, user, err := svc.Login(context.Background(), "alice", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestAuthService_AuthenticateByToken(t *testing.T) {
	hasher := auth.NewHasher()
	codec := newTestCodec(t, 30*time.Minute)
	alice := testUser(t, hasher, "secret123")

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
	svc := NewAuthService(repo, hasher, codec, zap.NewNop())

	token, err := codec.Encode("alice")
	require.NoError(t, err)

	user, err := svc.AuthenticateByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestAuthService_AuthenticateByToken_Expired(t *testing.T) {
	hasher := auth.NewHasher()
	expiredCodec := newTestCodec(t, -time.Minute)

	repo := new(MockUserRepository)
	svc := NewAuthService(repo, hasher, expiredCodec, zap.NewNop())

	token, err := expiredCodec.Encode("alice")
	require.NoError(t, err)

	_, err = svc.AuthenticateByToken(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthService_AuthenticateByToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), auth.NewHasher(), newTestCodec(t, 30*time.Minute), zap.NewNop())

	_, err := svc.AuthenticateByToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

// A valid, unexpired token for a since-deleted user must not resolve.
func TestAuthService_AuthenticateByToken_DeletedUser(t *testing.T) {
	codec := newTestCodec(t, 30*time.Minute)

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	svc := NewAuthService(repo, auth.NewHasher(), codec, zap.NewNop())

	token, err := codec.Encode("alice")
	require.NoError(t, err)

	_, err = svc.AuthenticateByToken(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

// Deactivation takes effect on the next token check, not at token expiry.
func TestAuthService_AuthenticateByToken_DeactivatedUser(t *testing.T) {
	hasher := auth.NewHasher()
	codec := newTestCodec(t, 30*time.Minute)
	alice := testUser(t, hasher, "secret123")
	alice.IsActive = false

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
	svc := NewAuthService(repo, hasher, codec, zap.NewNop())

	token, err := codec.Encode("alice")
	require.NoError(t, err)

	_, err = svc.AuthenticateByToken(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
