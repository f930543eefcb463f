package identity

import (
	"context"
	"errors"
	"time"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/shared"
	"github.com/atlas/backend/internal/infrastructure/auth"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SessionIssuer mints and validates session tokens
type SessionIssuer interface {
	Issue(in auth.SessionInput) (*auth.Session, error)
	Parse(token string) (*auth.Identity, error)
}

// AuthService handles login, logout and session introspection
type AuthService struct {
	people   identity.PersonRepository
	sessions SessionIssuer
	revoked  auth.RevocationList
	access   *identity.ModuleAccess
	now      func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	people identity.PersonRepository,
	sessions SessionIssuer,
	revoked auth.RevocationList,
	access *identity.ModuleAccess,
) *AuthService {
	return &AuthService{
		people:   people,
		sessions: sessions,
		revoked:  revoked,
		access:   access,
		now:      time.Now,
	}
}

// Login authenticates by username or email and opens a session. Unknown
// logins and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	log := logger.L(ctx)
	if in.Login == "" || in.Password == "" {
		return nil, shared.NewValidationError("login and password are required")
	}

	p, err := s.people.FindByLogin(ctx, in.Login)
	if errors.Is(err, shared.ErrNotFound) {
		log.Warn("Login for unknown account")
		return nil, shared.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !p.VerifyPassword(in.Password) {
		log.Warn("Invalid password attempt", zap.String("person_id", p.ID.String()))
		return nil, shared.ErrBadCredentials
	}
	if !p.Active {
		log.Warn("Login attempt for deactivated account", zap.String("person_id", p.ID.String()))
		return nil, shared.NewDomainError(shared.ErrForbidden.Code, "Account has been deactivated")
	}

	session, err := s.sessions.Issue(auth.SessionInput{
		PersonID: p.ID,
		TenantID: p.TenantID,
		Role:     p.Role,
		Name:     p.Name,
	})
	if err != nil {
		return nil, err
	}

	p.RecordLogin(s.now())
	if err := s.people.Update(ctx, p); err != nil {
		log.Warn("Failed to record last login", zap.Error(err))
	}

	log.Info("Login succeeded", zap.String("person_id", p.ID.String()), zap.String("role", p.Role.String()))
	return &LoginResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      ToPersonResponse(p),
		Modules:   s.access.Visible(p.Role),
	}, nil
}

// Logout revokes the session until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, id *auth.Identity) error {
	ttl := id.ExpiresAt.Sub(s.now())
	if ttl <= 0 || id.SessionID == "" {
		return nil
	}
	return s.revoked.Revoke(ctx, id.SessionID, ttl)
}

// Me describes the current session with its visible modules
func (s *AuthService) Me(id *auth.Identity) MeResponse {
	return MeResponse{
		PersonID:  id.PersonID,
		TenantID:  id.TenantID,
		Name:      id.Name,
		Role:      id.Role,
		Modules:   s.access.Visible(id.Role),
		ExpiresAt: id.ExpiresAt,
	}
}

// Authenticate validates a token and checks it was not revoked
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	id, err := s.sessions.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoked.IsRevoked(ctx, id.SessionID)
	if err != nil {
		logger.L(ctx).Warn("Revocation check failed, accepting token", zap.Error(err))
		return id, nil
	}
	if revoked {
		return nil, auth.ErrRevokedToken
	}
	return id, nil
}
