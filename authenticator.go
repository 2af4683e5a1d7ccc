package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// Auther implements the login flow: look the user up, verify the password,
// issue a session token. Unknown emails and wrong passwords produce the
// same error so the caller cannot enumerate accounts.
type Auther struct {
	store      UserStore
	tokens     TokenService
	signingKey []byte
	tokenTTL   time.Duration
	logger     Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	ttl := time.Duration(cfg.GetTokenExpiration()) * time.Hour
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Auther{
		store:      store,
		signingKey: []byte(cfg.GetSigningKey()),
		tokenTTL:   ttl,
		logger:     defLogger{},
		tokens:     NewTokenService([]byte(cfg.GetSigningKey()), ttl, defLogger{}),
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	// Update the TokenService logger as well
	s.tokens = NewTokenService(s.signingKey, s.tokenTTL, logger)
	return s
}

// TokenService returns the TokenService instance used by this Auther
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Login verifies the credentials and returns the user plus a signed
// session token carrying the user's id as subject.
func (s *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" {
		return nil, "", NewValidationError("email", "is required")
	}

	if password == "" {
		return nil, "", NewValidationError("password", "is required")
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) || errors.IsNotFound(err) {
			s.logger.Debug("Login attempt for unknown email")
			return nil, "", ErrMismatchedHashAndPassword
		}
		s.logger.Error("Login store lookup error", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, "", ErrMismatchedHashAndPassword
		}
		s.logger.Error("Login password verification error", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to verify password")
	}

	token, err := s.tokens.Generate(user.Identity())
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// SessionFromToken verifies a raw token and returns its claims.
func (s *Auther) SessionFromToken(raw string) (AuthClaims, error) {
	claims, err := s.tokens.Validate(raw)
	if err != nil {
		s.logger.Debug("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	return claims, nil
}
