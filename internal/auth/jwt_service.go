package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"saaskit/internal/model"
)

// SessionExpiry is the lifetime of locally issued session tokens.
const SessionExpiry = 24 * time.Hour

// Claims represents the claims of a locally issued session token.
type Claims struct {
	SessionID string  `json:"sid"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256 session tokens. It stands in for the
// identity provider in development and tests.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

var _ Verifier = (*JWTService)(nil)

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateSessionToken issues a session token for user. The session id is returned
// separately so callers can track or revoke it.
func (s *JWTService) GenerateSessionToken(user model.User) (sessionID string, token string, err error) {
	if user.ID == "" {
		return "", "", errors.New("user id is required")
	}
	sessionID = generateSessionID()
	now := s.now()
	claims := &Claims{
		SessionID: sessionID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ImageURL:  user.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return sessionID, token, err
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}
	return claims, nil
}

// Verify implements Verifier.
func (s *JWTService) Verify(_ context.Context, token string) (*Identity, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	ident := &Identity{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		ImageURL:  claims.ImageURL,
	}
	if claims.ExpiresAt != nil {
		ident.ExpiresAt = claims.ExpiresAt.Time
	}
	return ident, nil
}

func generateSessionID() string {
	return "sess_" + uuid.New().String()
}
