package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/partners"
)

const partnerColumns = `
	id, name, phone, email, address,
	category, dog_id, start_date, end_date,
	notes, created_at, updated_at`

type PartnersRepo struct {
	db *sql.DB
}

func NewPartnersRepo(db *sql.DB) *PartnersRepo {
	return &PartnersRepo{db: db}
}

func (r *PartnersRepo) Save(ctx context.Context, p partners.Partner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO partners (`+partnerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			email = excluded.email,
			address = excluded.address,
			category = excluded.category,
			dog_id = excluded.dog_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		p.ID,
		p.Name,
		p.Phone,
		p.Email,
		p.Address,
		string(p.Category),
		toNullString(p.DogID),
		toNullDate(p.StartDate),
		toNullDate(p.EndDate),
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PartnersRepo) GetByID(ctx context.Context, id string) (partners.Partner, error) {
	return queryOne(ctx, r.db, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id, scanPartner, partners.ErrNotFound)
}

func (r *PartnersRepo) List(ctx context.Context) ([]partners.Partner, error) {
	return queryAll(ctx, r.db, `SELECT `+partnerColumns+` FROM partners ORDER BY seq ASC`, scanPartner)
}

func (r *PartnersRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "partners", id, partners.ErrNotFound)
}

func scanPartner(s scanner) (partners.Partner, error) {
	var p partners.Partner
	var category string
	var dogID sql.NullString
	var start, end sql.NullTime
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Phone,
		&p.Email,
		&p.Address,
		&category,
		&dogID,
		&start,
		&end,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return partners.Partner{}, err
	}
	p.Category = dogs.Category(category)
	p.DogID = dogID.String
	p.StartDate = fromNullDate(start)
	p.EndDate = fromNullDate(end)
	return p, nil
}
