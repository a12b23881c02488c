package pets

import (
	"context"
	"errors"
	"time"
)

// Errores que devuelven las implementaciones de Repository.
var (
	ErrRecordNotFound = errors.New("pet record not found")
	ErrStaleVersion   = errors.New("pet record version changed")
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// Save sobreescribe los campos mutables (listing, adopter, available) solo si la
	// versión guardada es p.Version; si no, ErrStaleVersion. Devuelve la mascota con Version+1.
	// Nunca toca ID, Owner ni CreatedAt.
	Save(ctx context.Context, p Pet) (Pet, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListByAdopter(ctx context.Context, adopterUserID string) ([]Pet, error)

	// UpdateContact reescribe el snapshot de contacto en las mascotas donde c.UserID
	// es owner o adopter, con UpdatedAt=at y Version+1. Devuelve cuántas mascotas cambió.
	UpdateContact(ctx context.Context, c Contact, at time.Time) (int, error)
}

// Locker serializa transiciones por mascota (opcional; el CAS de Save ya garantiza los invariantes).
type Locker interface {
	Lock(ctx context.Context, petID string) (unlock func(), err error)
}

// ErrLockBusy: otro proceso tiene el lock de la mascota.
var ErrLockBusy = errors.New("pet lock busy")
