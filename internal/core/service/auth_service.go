package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/reflectify/reflectify-api/internal/core/domain"
	"github.com/reflectify/reflectify-api/internal/core/ports"
)

const bcryptCost = 10

// AuthService implements registration, login, logout and the session guard.
type AuthService struct {
	users     ports.UserRepository
	blacklist ports.TokenBlacklist
	cache     ports.RevocationCache // optional
	sessions  *SessionIssuer
	log       zerolog.Logger
}

// NewAuthService wires the auth use cases. cache may be nil.
func NewAuthService(
	users ports.UserRepository,
	blacklist ports.TokenBlacklist,
	cache ports.RevocationCache,
	sessions *SessionIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		blacklist: blacklist,
		cache:     cache,
		sessions:  sessions,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{User: user.Public(), Token: token}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{User: user.Public(), Token: token}, nil
}

// Logout revokes token. The token does not need a valid signature; a token
// that is already revoked is reported, not rejected.
func (s *AuthService) Logout(ctx context.Context, token string) (*ports.LogoutResult, error) {
	if token == "" {
		return nil, domain.ErrNoToken
	}

	revoked, err := s.isRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("logout: %w", err)
	}
	if revoked {
		return &ports.LogoutResult{AlreadyRevoked: true}, nil
	}

	expiresAt := s.sessions.ExpiresAt(token)
	already, err := s.blacklist.Revoke(ctx, token, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("logout: revoke: %w", err)
	}
	s.markCache(ctx, token, expiresAt)

	s.log.Info().Str("token", fingerprint(token)).Bool("already_revoked", already).Msg("token revoked")
	return &ports.LogoutResult{AlreadyRevoked: already}, nil
}

// Authenticate applies the guard checks in order: presence, revocation,
// signature and expiry, then the owning user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNoToken
	}

	revoked, err := s.isRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	session, err := s.sessions.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user.Public(), nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user.Public(), nil
}

// isRevoked consults the cache first and falls back to the blacklist, which
// is authoritative. Store hits are written back to the cache.
func (s *AuthService) isRevoked(ctx context.Context, token string) (bool, error) {
	if s.cache != nil {
		hit, err := s.cache.IsRevoked(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("revocation cache lookup failed, using store")
		} else if hit {
			return true, nil
		}
	}

	revoked, err := s.blacklist.IsRevoked(ctx, token)
	if err != nil {
		return false, fmt.Errorf("blacklist lookup: %w", err)
	}
	if revoked {
		s.markCache(ctx, token, s.sessions.ExpiresAt(token))
	}
	return revoked, nil
}

func (s *AuthService) markCache(ctx context.Context, token string, expiresAt time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Mark(ctx, token, expiresAt); err != nil {
		s.log.Warn().Err(err).Str("token", fingerprint(token)).Msg("failed to cache revocation")
	}
}

// fingerprint identifies a token in logs without exposing it.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}
