package auth

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients through the error envelope.
const (
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	TextCodeEmailTaken   = "EMAIL_TAKEN"
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	TextCodeTokenInvalid = "TOKEN_INVALID"
	TextCodeAdminOnly    = "ADMIN_REQUIRED"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword covers both unknown identifiers and wrong
// passwords: callers must not be able to tell the two apart.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCreds)

// ErrEmailTaken rejects a registration against an email that already exists.
var ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeEmailTaken)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned for tokens past their expiration date
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenSignatureInvalid is returned when a token was tampered with or
// signed with a different key
var ErrTokenSignatureInvalid = errors.New("invalid token signature", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenInvalid)

// ErrTokenMalformed is returned for strings that are not tokens of this scheme
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenInvalid)

// ErrMissingAuthHeader is returned when a protected route gets no Authorization header
var ErrMissingAuthHeader = errors.New("authorization header is missing", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrBadAuthScheme is returned when the Authorization header does not use
// the expected bearer scheme
var ErrBadAuthScheme = errors.New("invalid token format, expected 'Bearer <token>'", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrMissingSession is returned by guards that run without an authenticated
// identity in the request context
var ErrMissingSession = errors.New("authentication required", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNotAdmin rejects authenticated users without the admin role
var ErrNotAdmin = errors.New("admin privileges required", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode(TextCodeAdminOnly)

// NewValidationError builds a field-scoped validation failure.
func NewValidationError(field, reason string) *errors.Error {
	return errors.New(fmt.Sprintf("%s %s", field, reason), errors.CategoryValidation).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"field": field})
}

// FirstValidationError maps an ozzo validation result to a single
// field-scoped error, resolving fields in the given fixed order so the
// caller always learns about the same field first.
func FirstValidationError(err error, fieldOrder ...string) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return errors.Wrap(err, errors.CategoryValidation, "invalid payload").
			WithCode(errors.CodeBadRequest)
	}

	for _, field := range fieldOrder {
		if ferr, exists := verrs[field]; exists && ferr != nil {
			return NewValidationError(field, ferr.Error())
		}
	}

	// a field we did not anticipate failed, still report it
	for field, ferr := range verrs {
		if ferr != nil {
			return NewValidationError(field, ferr.Error())
		}
	}

	return nil
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsTokenSignatureError will check for tampered or wrongly signed tokens
func IsTokenSignatureError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Message == ErrTokenSignatureInvalid.Message {
		return true
	}

	return strings.Contains(err.Error(), "signature is invalid")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Message == ErrTokenMalformed.Message {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsValidationError reports whether err carries the validation category.
func IsValidationError(err error) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryValidation
	}
	return false
}

// isDuplicateKeyError inspects the store's unique constraint signal. The
// match is on the driver's typed message rather than an engine specific
// numeric code; sqlite and postgres are the dialects bun runs on here.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
