package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"saaskit/internal/auth"
	"saaskit/internal/model"
)

// ErrSignInDisabled is returned when the active provider does not issue local sessions.
var ErrSignInDisabled = errors.New("local sign-in is disabled")

// SignInRequest is a development sign-in.
type SignInRequest struct {
	UserID    string  `json:"userId" form:"userId" validate:"omitempty,max=64"`
	Email     string  `json:"email" form:"email" validate:"required,email"`
	FirstName *string `json:"firstName,omitempty" form:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" form:"lastName" validate:"omitempty,max=100"`
}

// Session is an issued session token.
type Session struct {
	ID        string
	Token     string
	User      model.User
	ExpiresAt time.Time
}

// AuthService handles session sign-in and sign-out.
type AuthService interface {
	SignIn(ctx context.Context, req SignInRequest) (*Session, error)
	SignOut(ctx context.Context, ident *auth.Identity) error
}

type authService struct {
	issuer    auth.SessionIssuer
	sessions  auth.SessionStoreInterface
	remote    auth.RemoteRevoker
	forgetter auth.UserForgetter
	now       func() time.Time
}

// AuthServiceConfig wires the collaborators of AuthService. Issuer is nil
// when sessions come from the identity provider; Remote and Forgetter are
// optional.
type AuthServiceConfig struct {
	Issuer    auth.SessionIssuer
	Sessions  auth.SessionStoreInterface
	Remote    auth.RemoteRevoker
	Forgetter auth.UserForgetter
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg AuthServiceConfig) AuthService {
	return &authService{
		issuer:    cfg.Issuer,
		sessions:  cfg.Sessions,
		remote:    cfg.Remote,
		forgetter: cfg.Forgetter,
		now:       time.Now,
	}
}

// SignIn issues a local session. Without an explicit user id the id is
// derived from the email so repeated sign-ins map to the same user.
func (s *authService) SignIn(_ context.Context, req SignInRequest) (*Session, error) {
	if s.issuer == nil {
		return nil, ErrSignInDisabled
	}
	user := model.User{
		ID:        req.UserID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: nonBlank(req.FirstName),
		LastName:  nonBlank(req.LastName),
	}
	if user.ID == "" {
		user.ID = devUserID(user.Email)
	}

	sessionID, token, err := s.issuer.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &Session{
		ID:        sessionID,
		Token:     token,
		User:      user,
		ExpiresAt: s.now().Add(auth.SessionExpiry),
	}, nil
}

// SignOut revokes the session locally until it would have expired, ends it at
// the provider and drops the cached user mirror.
func (s *authService) SignOut(ctx context.Context, ident *auth.Identity) error {
	if ident == nil || ident.SessionID == "" {
		return nil
	}
	if s.sessions != nil {
		if err := s.sessions.Revoke(ctx, ident.SessionID, auth.RevocationTTL(ident, s.now())); err != nil {
			return fmt.Errorf("revoke session: %w", err)
		}
	}
	if s.forgetter != nil {
		s.forgetter.Forget(ctx, ident.UserID)
	}
	if s.remote != nil {
		if err := s.remote.RevokeSession(ctx, ident.SessionID); err != nil {
			return fmt.Errorf("revoke provider session: %w", err)
		}
	}
	return nil
}

// devUserID derives a stable id from the email (UUID v5 in the URL namespace).
func devUserID(email string) string {
	return "user_dev_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
