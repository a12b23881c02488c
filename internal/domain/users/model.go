package users

import (
	"time"

	"pet-adoption/internal/domain/identity"
)

type User struct {
	ID    string
	Name  string
	Email string
	Phone string
	Image string

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Identity() identity.Identity {
	return identity.Identity{ID: u.ID, Name: u.Name, Image: u.Image, Phone: u.Phone}
}
