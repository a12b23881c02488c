package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-adoption/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, phone, image, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, u.ID, u.Name, u.Email, u.Phone, u.Image, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return users.ErrDuplicateEmail
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			email = $3,
			phone = $4,
			image = $5,
			password_hash = $6,
			updated_at = $7
		WHERE id = $1
	`, u.ID, u.Name, u.Email, u.Phone, u.Image, u.PasswordHash, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrDuplicateEmail
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrRecordNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrRecordNotFound
	}
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.get(ctx, `WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *UsersRepo) get(ctx context.Context, where string, arg any) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, image, password_hash, created_at, updated_at
		FROM users `+where, arg)

	var u users.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Image, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrRecordNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
