package auth

import (
	"errors"
	"time"

	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid session token")
	ErrExpiredToken     = errors.New("session has expired")
	ErrInvalidClaims    = errors.New("invalid session claims")
	ErrTokenNotYetValid = errors.New("session is not yet valid")
	ErrRevokedToken     = errors.New("session has been revoked")
)

// Claims is the signed session payload
type Claims struct {
	jwt.RegisteredClaims
	PersonID string `json:"person_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Identity is the resolved caller of a request. Role is always one of the
// closed set; anything unrecognized in the token becomes RoleUnknown.
type Identity struct {
	PersonID  uuid.UUID
	TenantID  uuid.UUID
	Role      identity.Role
	Name      string
	SessionID string
	ExpiresAt time.Time
}

// SessionInput holds the fields signed into a new session
type SessionInput struct {
	PersonID uuid.UUID
	TenantID uuid.UUID
	Role     identity.Role
	Name     string
}

// Session is a freshly issued token
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// SessionService issues and verifies HS256 session tokens
type SessionService struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	now      func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(cfg config.SessionConfig) *SessionService {
	return &SessionService{
		secret:   []byte(cfg.Secret),
		lifetime: cfg.Lifetime,
		issuer:   cfg.Issuer,
		now:      time.Now,
	}
}

// Lifetime returns how long issued sessions last
func (s *SessionService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue signs a new session for the given person
func (s *SessionService) Issue(in SessionInput) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.lifetime)
	jti := uuid.NewString()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   in.PersonID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		PersonID: in.PersonID.String(),
		TenantID: in.TenantID.String(),
		Role:     string(in.Role),
		Name:     in.Name,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ID: jti, ExpiresAt: expiresAt}, nil
}

// Parse verifies a token and resolves the identity it carries
func (s *SessionService) Parse(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	personID, err := uuid.Parse(claims.PersonID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	id := &Identity{
		PersonID:  personID,
		TenantID:  tenantID,
		Role:      identity.NormalizeRole(claims.Role),
		Name:      claims.Name,
		SessionID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
