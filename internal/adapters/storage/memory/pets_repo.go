package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

// Save hace el compare-and-swap de versión bajo el mismo lock de escritura.
func (r *petRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[p.ID]
	if !ok {
		return pets.Pet{}, pets.ErrRecordNotFound
	}
	if cur.Version != p.Version {
		return pets.Pet{}, pets.ErrStaleVersion
	}

	// ID/Owner/CreatedAt se mantienen los guardados
	cur.Name = p.Name
	cur.Age = p.Age
	cur.Weight = p.Weight
	cur.Color = p.Color
	cur.Images = p.Images
	cur.Available = p.Available
	cur.Adopter = p.Adopter
	cur.UpdatedAt = p.UpdatedAt
	cur.Version++

	r.byID[p.ID] = clonePet(cur)
	return clonePet(cur), nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrRecordNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return pets.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.filter(func(pets.Pet) bool { return true }), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return p.Owner.UserID == ownerUserID }), nil
}

func (r *petRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]pets.Pet, error) {
	return r.filter(func(p pets.Pet) bool { return p.Adopter.Is(adopterUserID) }), nil
}

func (r *petRepo) UpdateContact(ctx context.Context, c pets.Contact, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, p := range r.byID {
		touched := false
		if p.Owner.UserID == c.UserID {
			p.Owner = c
			touched = true
		}
		if p.Adopter.Is(c.UserID) {
			p.Adopter = pets.AdopterOf(c)
			touched = true
		}
		if touched {
			p.Version++
			p.UpdatedAt = at
			r.byID[id] = p
			n++
		}
	}
	return n, nil
}

// filter devuelve copias ordenadas por created_at desc (más nuevas primero).
func (r *petRepo) filter(keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, clonePet(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func clonePet(p pets.Pet) pets.Pet {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
