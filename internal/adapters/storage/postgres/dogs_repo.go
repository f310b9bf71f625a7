package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/dogs"
)

const dogColumns = `
	id, name, category, breed, sex,
	birth_date, microchip,
	caregiver_name, caregiver_phone, caregiver_email,
	notes, created_at, updated_at`

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Save(ctx context.Context, d dogs.Dog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (`+dogColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			breed = excluded.breed,
			sex = excluded.sex,
			birth_date = excluded.birth_date,
			microchip = excluded.microchip,
			caregiver_name = excluded.caregiver_name,
			caregiver_phone = excluded.caregiver_phone,
			caregiver_email = excluded.caregiver_email,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		d.ID,
		d.Name,
		string(d.Category),
		d.Breed,
		string(d.Sex),
		toNullDate(d.BirthDate),
		d.Microchip,
		d.Caregiver.Name,
		d.Caregiver.Phone,
		d.Caregiver.Email,
		d.Notes,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	return queryOne(ctx, r.db, `SELECT `+dogColumns+` FROM dogs WHERE id = $1`, id, scanDog, dogs.ErrNotFound)
}

func (r *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	return queryAll(ctx, r.db, `SELECT `+dogColumns+` FROM dogs ORDER BY seq ASC`, scanDog)
}

func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "dogs", id, dogs.ErrNotFound)
}

func scanDog(s scanner) (dogs.Dog, error) {
	var d dogs.Dog
	var category, sex string
	var bd sql.NullTime
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&category,
		&d.Breed,
		&sex,
		&bd,
		&d.Microchip,
		&d.Caregiver.Name,
		&d.Caregiver.Phone,
		&d.Caregiver.Email,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}
	d.Category = dogs.Category(category)
	d.Sex = dogs.Sex(sex)
	d.BirthDate = fromNullDate(bd)
	return d, nil
}
