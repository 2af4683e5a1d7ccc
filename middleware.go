package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultContextKey is the request-local key the sign-in gate stores
// claims under.
const DefaultContextKey = "user"

// DefaultAuthScheme is the required Authorization scheme. The prefix match
// is exact: scheme name, single space, then the token.
const DefaultAuthScheme = "Bearer"

// GateConfig wires the request interceptors. Tokens is required by
// RequireSignIn, Store by RequireAdmin.
type GateConfig struct {
	Tokens     TokenService
	Store      UserStore
	Logger     Logger
	AuthScheme string
	ContextKey string
}

func (cfg GateConfig) withDefaults() GateConfig {
	if cfg.Logger == nil {
		cfg.Logger = defLogger{}
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	return cfg
}

// RequireSignIn is the request gate: it extracts the bearer token, verifies
// it, and attaches the decoded claims to the request before handing off.
// Rejections carry a precise status but never internal detail.
func RequireSignIn(cfg GateConfig) fiber.Handler {
	cfg = cfg.withDefaults()
	if cfg.Tokens == nil {
		panic("AUTH: sign-in gate configuration: TokenService is required")
	}

	schemePrefix := cfg.AuthScheme + " "

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return respond(c, http.StatusUnauthorized, ErrMissingAuthHeader.Message)
		}

		// case-sensitive on purpose: "bearer x" and "Token x" are both
		// rejected before any token parsing happens
		if !strings.HasPrefix(header, schemePrefix) {
			return respond(c, http.StatusUnauthorized, ErrBadAuthScheme.Message)
		}

		raw := header[len(schemePrefix):]

		claims, err := cfg.Tokens.Validate(raw)
		if err != nil {
			switch {
			case IsTokenExpiredError(err):
				return respond(c, http.StatusUnauthorized, "token expired")
			case IsTokenSignatureError(err), IsMalformedError(err):
				return respond(c, http.StatusUnauthorized, "invalid token")
			default:
				cfg.Logger.Error("sign-in gate token verification failed", "error", err)
				return respond(c, http.StatusInternalServerError, "unexpected server error")
			}
		}

		c.Locals(cfg.ContextKey, claims)
		c.SetUserContext(WithClaimsContext(c.UserContext(), claims))

		return c.Next()
	}
}

// RequireAdmin is the role gate. It must run after RequireSignIn. The role
// is re-read from the store on every request, never trusted from the
// token, so a promotion or demotion applies to already issued tokens.
func RequireAdmin(cfg GateConfig) fiber.Handler {
	cfg = cfg.withDefaults()
	if cfg.Store == nil {
		panic("AUTH: admin gate configuration: UserStore is required")
	}

	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromLocals(c, cfg.ContextKey)
		if !ok || claims.UserID() == "" {
			return respond(c, http.StatusUnauthorized, ErrMissingSession.Message)
		}

		user, err := cfg.Store.FindByID(c.UserContext(), claims.UserID())
		if err != nil {
			return WriteError(c, cfg.Logger, err)
		}

		if !user.IsAdmin() {
			return respond(c, http.StatusForbidden, ErrNotAdmin.Message)
		}

		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// ClaimsFromLocals extracts the AuthClaims the sign-in gate stored on the
// request.
func ClaimsFromLocals(c *fiber.Ctx, key string) (AuthClaims, bool) {
	if key == "" {
		key = DefaultContextKey
	}

	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}

	claims, ok := raw.(AuthClaims)
	return claims, ok
}
