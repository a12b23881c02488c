package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/jackc/pgx/v5/pgtype"
)

const petColumns = `
	id, owner_user_id, owner_name, owner_image, owner_phone,
	name, age, weight, color, images,
	available, adopter_user_id, adopter_name, adopter_image, adopter_phone,
	version, created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	adopterID, a := adopterColumns(p.Adopter)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		p.ID, p.Owner.UserID, p.Owner.Name, p.Owner.Image, p.Owner.Phone,
		p.Name, p.Age, p.Weight, p.Color, imagesArg(p.Images),
		p.Available, adopterID, a.Name, a.Image, a.Phone,
		p.Version, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// Save: UPDATE condicionado a la versión leída. 0 filas => no existe o cambió.
func (r *PetsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	adopterID, a := adopterColumns(p.Adopter)
	row := r.db.QueryRowContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			age = $4,
			weight = $5,
			color = $6,
			images = $7,
			available = $8,
			adopter_user_id = $9,
			adopter_name = $10,
			adopter_image = $11,
			adopter_phone = $12,
			updated_at = $13,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING `+petColumns,
		p.ID, p.Version,
		p.Name, p.Age, p.Weight, p.Color, imagesArg(p.Images),
		p.Available, adopterID, a.Name, a.Image, a.Phone,
		p.UpdatedAt,
	)

	saved, err := scanPet(row, pgtype.NewMap())
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)`, p.ID).Scan(&exists); err != nil {
		return pets.Pet{}, err
	}
	if !exists {
		return pets.Pet{}, pets.ErrRecordNotFound
	}
	return pets.Pet{}, pets.ErrStaleVersion
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row, pgtype.NewMap())
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrRecordNotFound
	}
	return p, err
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrRecordNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at DESC`)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_user_id = $1 ORDER BY created_at DESC`, ownerUserID)
}

func (r *PetsRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]pets.Pet, error) {
	return r.query(ctx, `SELECT `+petColumns+` FROM pets WHERE adopter_user_id = $1 ORDER BY created_at DESC`, adopterUserID)
}

// UpdateContact actualiza owner_* y adopter_* en una transacción; sube version
// para que una transición en vuelo con el snapshot viejo falle por CAS.
func (r *PetsRepo) UpdateContact(ctx context.Context, c pets.Contact, at time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	ownerRes, err := tx.ExecContext(ctx, `
		UPDATE pets
		SET owner_name = $2, owner_image = $3, owner_phone = $4, updated_at = $5, version = version + 1
		WHERE owner_user_id = $1
	`, c.UserID, c.Name, c.Image, c.Phone, at)
	if err != nil {
		return 0, fmt.Errorf("update owner contact: %w", err)
	}
	adopterRes, err := tx.ExecContext(ctx, `
		UPDATE pets
		SET adopter_name = $2, adopter_image = $3, adopter_phone = $4, updated_at = $5, version = version + 1
		WHERE adopter_user_id = $1
	`, c.UserID, c.Name, c.Image, c.Phone, at)
	if err != nil {
		return 0, fmt.Errorf("update adopter contact: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	// owner y adopter nunca coinciden en una misma fila (CHECK), se pueden sumar
	n1, _ := ownerRes.RowsAffected()
	n2, _ := adopterRes.RowsAffected()
	return int(n1 + n2), nil
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// pgtype.Map no es seguro para uso concurrente: uno por query
	m := pgtype.NewMap()
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows, m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// images es TEXT[]; database/sql no lo escanea directo, se usa el SQLScanner de pgtype.
func scanPet(s scanner, m *pgtype.Map) (pets.Pet, error) {
	var (
		p         pets.Pet
		images    []string
		adopterID sql.NullString
		a         pets.Contact
	)
	if err := s.Scan(
		&p.ID, &p.Owner.UserID, &p.Owner.Name, &p.Owner.Image, &p.Owner.Phone,
		&p.Name, &p.Age, &p.Weight, &p.Color, m.SQLScanner(&images),
		&p.Available, &adopterID, &a.Name, &a.Image, &a.Phone,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Images = images
	if adopterID.Valid {
		a.UserID = adopterID.String
		p.Adopter = pets.AdopterOf(a)
	}
	return p, nil
}

func adopterColumns(ad pets.Adopter) (sql.NullString, pets.Contact) {
	c, ok := ad.Get()
	if !ok {
		return sql.NullString{}, pets.Contact{}
	}
	return sql.NullString{String: c.UserID, Valid: true}, c
}

func imagesArg(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
