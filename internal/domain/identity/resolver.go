package identity

import (
	"context"
	"errors"
	"strings"

	"pet-adoption/internal/platform/fault"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"
)

type Resolver struct {
	verifier auth.CredentialVerifier
	profiles ProfileStore
	metrics  *metrics.Metrics
}

func NewResolver(verifier auth.CredentialVerifier, profiles ProfileStore, m *metrics.Metrics) *Resolver {
	return &Resolver{verifier: verifier, profiles: profiles, metrics: m}
}

// Resolve convierte un bearer token en Identity.
// - token vacío => ErrMissingCredential
// - firma inválida o user sin perfil => ErrInvalidCredential
// - fallas del verifier/store => fault.Storage
func (r *Resolver) Resolve(ctx context.Context, credential string) (Identity, error) {
	id, err := r.resolve(ctx, credential)
	r.metrics.ObserveIdentityResolution(outcome(err))
	return id, err
}

func (r *Resolver) resolve(ctx context.Context, credential string) (Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Identity{}, ErrMissingCredential
	}

	claims, err := r.verifier.Verify(ctx, credential)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return Identity{}, ErrInvalidCredential
		}
		return Identity{}, fault.Storage(err)
	}

	p, err := r.profiles.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return Identity{}, ErrInvalidCredential
		}
		return Identity{}, fault.Storage(err)
	}

	// copia por valor; el ID siempre es el del token
	return Identity{
		ID:    claims.UserID,
		Name:  p.Name,
		Image: p.Image,
		Phone: p.Phone,
	}, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return fault.ReasonOf(err)
}
