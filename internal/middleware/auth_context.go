package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/domain/identity"
)

type ctxKey string

const authKey ctxKey = "auth"

// IdentityResolver es lo que el middleware necesita de identity.Resolver.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (identity.Identity, error)
}

type authResult struct {
	identity identity.Identity
	err      error
}

// AuthContext:
// - Sin header Authorization => no setea nada (RequireIdentity devolverá ErrMissingCredential).
// - "Bearer" sin token => ErrMissingCredential.
// - Header con otro esquema => ErrInvalidCredential.
// - Si viene token => Resolve() y guarda identidad o error.
// Nunca corta el request; los handlers deciden si exigen auth.
func AuthContext(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			var res authResult
			token, ok := bearerToken(header)
			switch {
			case !ok:
				res.err = identity.ErrInvalidCredential
			case token == "":
				res.err = identity.ErrMissingCredential
			default:
				res.identity, res.err = resolver.Resolve(r.Context(), token)
			}

			ctx := context.WithValue(r.Context(), authKey, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity devuelve la identidad resuelta para el request o el error de identidad.
func RequireIdentity(ctx context.Context) (identity.Identity, error) {
	res, ok := ctx.Value(authKey).(authResult)
	if !ok {
		return identity.Identity{}, identity.ErrMissingCredential
	}
	if res.err != nil {
		return identity.Identity{}, res.err
	}
	return res.identity, nil
}

// bearerToken devuelve ok=false si el esquema no es Bearer; token vacío si no hay credencial.
func bearerToken(authHeader string) (token string, ok bool) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
