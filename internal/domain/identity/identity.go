package identity

import (
	"context"
	"errors"

	"pet-adoption/internal/platform/fault"
)

// Identity es un snapshot de solo lectura del usuario autenticado.
// Vale para la operación en curso; no cachear entre requests.
type Identity struct {
	ID    string
	Name  string
	Image string
	Phone string
}

// ProfileStore resuelve el perfil de un user id verificado.
type ProfileStore interface {
	FindByID(ctx context.Context, userID string) (Identity, error)
}

// ErrProfileNotFound lo devuelven los ProfileStore cuando el user id no existe.
var ErrProfileNotFound = errors.New("profile not found")

var (
	ErrMissingCredential = fault.New(fault.KindIdentity, "missing_credential", "authentication credential not provided")
	ErrInvalidCredential = fault.New(fault.KindIdentity, "invalid_credential", "authentication credential is invalid")
)
