package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Bearer-token auth. Tokens are HMAC-SHA256 signed, carry the user id and
// role, and are presented as "Authorization: Bearer <token>". 401 is the only
// centrally handled error status: RequireAuth answers it for every protected
// route so no handler deals with missing credentials itself.

type ctxKey string

const identityCtxKey = ctxKey("identity")

// Identity is what a valid token resolves to.
type Identity struct {
	UserID uint
	Role   string
}

// UserVerifier is an optional callback to validate that a token's user still exists/is allowed.
// Set it during app bootstrap via SetUserVerifier. If nil, no extra verification is performed.
type UserVerifier func(ctx context.Context, uid uint) bool

var verifier UserVerifier

// SetUserVerifier configures the global verifier used by RequireAuth.
func SetUserVerifier(v UserVerifier) { verifier = v }

// Secret returns TOKEN_SECRET or default dev value.
func Secret() string {
	if s := os.Getenv("TOKEN_SECRET"); s != "" {
		return s
	}
	return "devtokensecret"
}

// IssueToken builds a signed token of the form "uid.role.sig".
func IssueToken(userID uint, role string) string {
	payload := strconv.FormatUint(uint64(userID), 10) + "." + role
	return payload + "." + sign(payload)
}

// ParseToken validates a raw token and returns the identity it carries.
func ParseToken(raw string) (Identity, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Identity{}, false
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(sign(payload))) {
		return Identity{}, false
	}
	id64, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || id64 == 0 {
		return Identity{}, false
	}
	return Identity{UserID: uint(id64), Role: parts[1]}, true
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// FromRequest extracts and validates the bearer token of a request.
func FromRequest(r *http.Request) (Identity, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return Identity{}, false
	}
	return ParseToken(strings.TrimSpace(h[len(prefix):]))
}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFromContext extracts the identity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityCtxKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Middleware attaches the identity to the request context if a valid token is present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := FromRequest(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects unauthenticated requests with a 401 JSON body.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if verifier != nil && !verifier(r.Context(), id.UserID) {
			// Token refers to a non-existing/disabled user: treat as unauthorized.
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprint(w, `{"success":false,"error":"unauthorized"}`)
}
