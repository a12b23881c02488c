package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidToken: firma/expiración inválida o payload sin user id.
// Cualquier otro error de un verifier se trata como falla de infraestructura.
var ErrInvalidToken = errors.New("invalid token")

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// CredentialVerifier verifica un token y devuelve claims o error.
type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite credenciales para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
}
