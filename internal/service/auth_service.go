package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// AuthService establishes identity from credentials or bearer tokens.
//
// Failures surface as exactly two domain errors: apperrors.ErrInvalidCredentials
// for the password path and apperrors.ErrInvalidToken for the token path. The
// internal reason (unknown user, bad password, bad signature, expired,
// malformed, inactive) is logged but never returned, so responses cannot be
// used to probe which part of a credential was wrong.
type AuthService interface {
	// AuthenticateByPassword verifies a username/password pair. It does not
	// gate on IsActive; Login applies that policy.
	AuthenticateByPassword(ctx context.Context, username, password string) (*model.User, error)
	// AuthenticateByToken decodes a bearer token and re-resolves its subject
	// against the store. Tokens are stateless, so this live lookup is what
	// makes deletion and deactivation take effect before expiry.
	AuthenticateByToken(ctx context.Context, token string) (*model.User, error)
	// Login authenticates a password and issues a signed access token.
	// Inactive accounts are rejected here.
	Login(ctx context.Context, username, password string) (string, *model.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	codec  *auth.TokenCodec
	log    *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.Hasher, codec *auth.TokenCodec, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		codec:  codec,
		log:    log,
	}
}

func (s *authService) AuthenticateByPassword(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Info("authentication failed", zap.String("reason", "no_such_user"), zap.String("username", username))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info("authentication failed", zap.String("reason", "bad_password"), zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) AuthenticateByToken(ctx context.Context, token string) (*model.User, error) {
	subject, err := s.codec.Decode(token)
	if err != nil {
		s.log.Info("token rejected", zap.String("reason", decodeReason(err)))
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A deleted user's old token must not resolve.
			s.log.Info("token rejected", zap.String("reason", "unknown_subject"), zap.String("subject", subject))
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		s.log.Info("token rejected", zap.String("reason", "inactive"), zap.String("subject", subject))
		return nil, apperrors.ErrInvalidToken
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.AuthenticateByPassword(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	if !user.IsActive {
		s.log.Info("authentication failed", zap.String("reason", "inactive"), zap.String("username", username))
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.codec.Encode(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return token, user, nil
}

func decodeReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
