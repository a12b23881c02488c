package users

import (
	"context"
	"errors"

	"pet-adoption/internal/domain/identity"
)

// ProfileStore adapta Repository a identity.ProfileStore.
func ProfileStore(repo Repository) identity.ProfileStore {
	return profileStore{repo: repo}
}

type profileStore struct {
	repo Repository
}

func (p profileStore) FindByID(ctx context.Context, userID string) (identity.Identity, error) {
	u, err := p.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return identity.Identity{}, identity.ErrProfileNotFound
		}
		return identity.Identity{}, err
	}
	return u.Identity(), nil
}
