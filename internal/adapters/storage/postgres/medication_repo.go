package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/medication"
)

const medicationColumns = `
	id, dog_id, dog_name, reporter_id,
	type, check_date, note,
	created_at, updated_at`

type MedicationRepo struct {
	db *sql.DB
}

func NewMedicationRepo(db *sql.DB) *MedicationRepo {
	return &MedicationRepo{db: db}
}

func (r *MedicationRepo) Save(ctx context.Context, c medication.Check) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_checks (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			dog_id = excluded.dog_id,
			dog_name = excluded.dog_name,
			reporter_id = excluded.reporter_id,
			type = excluded.type,
			check_date = excluded.check_date,
			note = excluded.note,
			updated_at = excluded.updated_at
	`,
		c.ID,
		toNullString(c.DogID),
		c.DogName,
		c.ReporterID,
		string(c.Type),
		toNullDate(c.CheckDate),
		c.Note,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *MedicationRepo) GetByID(ctx context.Context, id string) (medication.Check, error) {
	return queryOne(ctx, r.db, `SELECT `+medicationColumns+` FROM medication_checks WHERE id = $1`, id, scanMedication, medication.ErrNotFound)
}

func (r *MedicationRepo) List(ctx context.Context) ([]medication.Check, error) {
	return queryAll(ctx, r.db, `SELECT `+medicationColumns+` FROM medication_checks ORDER BY seq ASC`, scanMedication)
}

func (r *MedicationRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "medication_checks", id, medication.ErrNotFound)
}

func scanMedication(s scanner) (medication.Check, error) {
	var c medication.Check
	var dogID sql.NullString
	var typ string
	var day sql.NullTime
	if err := s.Scan(
		&c.ID,
		&dogID,
		&c.DogName,
		&c.ReporterID,
		&typ,
		&day,
		&c.Note,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return medication.Check{}, err
	}
	c.DogID = dogID.String
	c.Type = medication.Type(typ)
	c.CheckDate = fromNullDate(day)
	return c, nil
}
