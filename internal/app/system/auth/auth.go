// Package auth issues and verifies the bearer tokens that protect the API.
//
// Tokens are HS256 JWTs carrying the user id as the subject and the role
// as a private claim. LoadBearerUser verifies the Authorization header and
// re-fetches the user so a token for a deleted account stops working
// immediately; RequireSignedIn and RequireRole guard route groups.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/coursehub/internal/app/system/httpjson"
)

/*─────────────────────────────────────────────────────────────────────────────*
 | Token manager                                                              |
 *─────────────────────────────────────────────────────────────────────────────*/

// Claims is the JWT payload for an issued token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses bearer tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// manager is initialised once via InitTokenManager.
var manager *TokenManager

// InitTokenManager configures the global token manager. The secret must be
// non-empty; 32+ random chars are recommended.
func InitTokenManager(secret string, expiry time.Duration, logger *zap.Logger) error {
	if secret == "" {
		return fmt.Errorf("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if expiry <= 0 {
		return fmt.Errorf("jwt expiry must be positive, got %s", expiry)
	}

	manager = &TokenManager{secret: []byte(secret), expiry: expiry}

	logger.Info("token manager initialized",
		zap.Duration("expiry", expiry))

	return nil
}

// IssueToken signs a token for the given user id and role.
func IssueToken(userID, role string) (string, error) {
	if manager == nil {
		return "", fmt.Errorf("token manager not initialized")
	}
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(manager.expiry)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(manager.secret)
}

// ParseToken verifies a signed token and returns its claims.
func ParseToken(signed string) (*Claims, error) {
	if manager == nil {
		return nil, fmt.Errorf("token manager not initialized")
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(signed, &claims,
		func(t *jwt.Token) (any, error) { return manager.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Current-User helper                                                        |
 *─────────────────────────────────────────────────────────────────────────────*/

// TokenUser is the authenticated user injected into r.Context().
type TokenUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserFetcher loads a user by id so each request reflects the current
// account state, not the state at token-issue time.
type UserFetcher interface {
	GetTokenUser(ctx context.Context, id string) (*TokenUser, error)
}

// fetcher is set once via SetUserFetcher during startup.
var fetcher UserFetcher

// SetUserFetcher wires the store LoadBearerUser uses to resolve tokens.
func SetUserFetcher(f UserFetcher) { fetcher = f }

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// WithTestUser returns a request with the user injected into context,
// bypassing token verification. For handler tests.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Middleware                                                                 |
 *─────────────────────────────────────────────────────────────────────────────*/

// LoadBearerUser injects the user into context when the request carries a
// valid bearer token for an existing account. Requests without a valid
// token continue anonymously; RequireSignedIn decides whether that is
// acceptable for the route.
func LoadBearerUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if manager == nil || fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		signed, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := ParseToken(signed)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := fetcher.GetTokenUser(r.Context(), claims.Subject)
		if err != nil || u == nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadBearerUser).
// The 401 message distinguishes a missing token from one that failed
// verification or belongs to a deleted account.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := bearerToken(r); ok {
			writeJSONError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "Not authorized, no token")
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				if _, hasTok := bearerToken(r); hasTok {
					writeJSONError(w, http.StatusUnauthorized, "Not authorized, token failed")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			if _, has := set[strings.ToLower(u.Role)]; !has {
				writeJSONError(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	httpjson.Error(w, status, msg)
}
