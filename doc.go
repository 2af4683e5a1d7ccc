// Package auth is a minimal user authentication module for web backends:
// it registers users, authenticates credentials, issues bearer session
// tokens, and gates protected routes behind signature verification and a
// role check.
//
// Sessions are stateless: a token is valid iff its signature verifies
// against the configured secret and it has not expired. Nothing is
// persisted server side and there is no revocation.
//
// The protected-route pipeline is an ordered middleware chain:
// RequireSignIn verifies the bearer token and attaches the decoded claims
// to the request context; RequireAdmin re-reads the user record by the
// attached subject id and only lets admins through. Because the role is
// never embedded in the token, promotions and demotions apply to tokens
// that are already in circulation.
package auth
