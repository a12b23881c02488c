package pets

import (
	"time"

	"pet-adoption/internal/domain/identity"
)

// State del ciclo de adopción; se deriva de Available + Adopter.
type State string

const (
	StateListed         State = "listed"
	StateVisitScheduled State = "visit_scheduled"
	StateAdopted        State = "adopted"
)

// Contact es la copia denormalizada de un usuario guardada en la mascota.
type Contact struct {
	UserID string
	Name   string
	Image  string
	Phone  string
}

func ContactOf(id identity.Identity) Contact {
	return Contact{UserID: id.ID, Name: id.Name, Image: id.Image, Phone: id.Phone}
}

// Adopter es NoAdopter o AdopterOf(contact). El zero value es NoAdopter.
type Adopter struct {
	contact Contact
	set     bool
}

func NoAdopter() Adopter { return Adopter{} }

func AdopterOf(c Contact) Adopter { return Adopter{contact: c, set: true} }

func (a Adopter) Get() (Contact, bool) { return a.contact, a.set }

func (a Adopter) Present() bool { return a.set }

// Is reporta si userID ocupa el slot de adoptante.
func (a Adopter) Is(userID string) bool { return a.set && a.contact.UserID == userID }

// Pet es el aggregate root. Owner e ID no cambian después de Create
// (salvo la propagación de datos de contacto).
type Pet struct {
	ID    string
	Owner Contact

	Name   string
	Age    int
	Weight float64
	Color  string
	Images []string

	Available bool
	Adopter   Adopter

	// Version para escritura condicional (optimistic locking).
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) State() State {
	switch {
	case !p.Available:
		return StateAdopted
	case p.Adopter.Present():
		return StateVisitScheduled
	default:
		return StateListed
	}
}

func (p Pet) IsOwnedBy(userID string) bool { return p.Owner.UserID == userID }
