package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidSignature is returned when a token's signature does not verify.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned when a token is past its embedded expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned for tokens that cannot be parsed at all.
	ErrTokenMalformed = errors.New("malformed token")
)

// TokenCodec creates and verifies signed, time-limited bearer tokens.
// Tokens are stateless: nothing is recorded server-side at issue time, so a
// token stays decodable until its embedded expiry regardless of what happens
// to the subject afterwards. Liveness of the subject is the Authenticator's
// concern, checked on every use.
type TokenCodec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec signing with the named HMAC algorithm
// (HS256/HS384/HS512) and issuing tokens valid for ttl.
func NewTokenCodec(secret, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Encode produces a signed token carrying subject, issued now and expiring
// at now + TTL.
func (c *TokenCodec) Encode(subject string) (string, error) {
	now := c.now()
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry of a token and returns its
// subject. It fails with ErrInvalidSignature, ErrTokenExpired or
// ErrTokenMalformed; nothing from an unverified token is ever trusted.
func (c *TokenCodec) Decode(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) || errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", ErrInvalidSignature
		}
		return "", ErrTokenMalformed
	}

	// Claims validation is done here against the codec clock so the expiry
	// decision and the issue decision share a single time source.
	if claims.ExpiresAt == nil || !c.now().Before(claims.ExpiresAt.Time) {
		return "", ErrTokenExpired
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
