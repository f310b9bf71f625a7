package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"guidedog-records/internal/domain/medical"
)

const medicalColumns = `
	id, dog_id, dog_name, reporter_id,
	category, visit_date, hospital, diagnosis, treatment,
	cost, vaccines, photos,
	created_at, updated_at`

// MedicalRepo guarda vacunas como TEXT[] y fotos como JSONB.
type MedicalRepo struct {
	db   *sql.DB
	tmap *pgtype.Map
}

func NewMedicalRepo(db *sql.DB) *MedicalRepo {
	return &MedicalRepo{db: db, tmap: pgtype.NewMap()}
}

func (r *MedicalRepo) Save(ctx context.Context, rec medical.Record) error {
	vaccines := make([]string, 0, len(rec.Vaccines))
	for _, v := range rec.Vaccines {
		vaccines = append(vaccines, string(v))
	}
	photos, err := json.Marshal(photosOrEmpty(rec.Photos))
	if err != nil {
		return fmt.Errorf("postgres: marshal photos: %w", err)
	}

	var cost sql.NullInt64
	if rec.Cost != nil {
		cost = sql.NullInt64{Int64: int64(*rec.Cost), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medical_records (`+medicalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			dog_id = excluded.dog_id,
			dog_name = excluded.dog_name,
			reporter_id = excluded.reporter_id,
			category = excluded.category,
			visit_date = excluded.visit_date,
			hospital = excluded.hospital,
			diagnosis = excluded.diagnosis,
			treatment = excluded.treatment,
			cost = excluded.cost,
			vaccines = excluded.vaccines,
			photos = excluded.photos,
			updated_at = excluded.updated_at
	`,
		rec.ID,
		toNullString(rec.DogID),
		rec.DogName,
		rec.ReporterID,
		string(rec.Category),
		toNullDate(rec.VisitDate),
		rec.Hospital,
		rec.Diagnosis,
		rec.Treatment,
		cost,
		vaccines,
		string(photos),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *MedicalRepo) GetByID(ctx context.Context, id string) (medical.Record, error) {
	return queryOne(ctx, r.db, `SELECT `+medicalColumns+` FROM medical_records WHERE id = $1`, id, r.scan, medical.ErrNotFound)
}

func (r *MedicalRepo) List(ctx context.Context) ([]medical.Record, error) {
	return queryAll(ctx, r.db, `SELECT `+medicalColumns+` FROM medical_records ORDER BY seq ASC`, r.scan)
}

func (r *MedicalRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "medical_records", id, medical.ErrNotFound)
}

func (r *MedicalRepo) scan(s scanner) (medical.Record, error) {
	var rec medical.Record
	var dogID sql.NullString
	var category string
	var visit sql.NullTime
	var cost sql.NullInt64
	var vaccines []string
	var photos []byte
	if err := s.Scan(
		&rec.ID,
		&dogID,
		&rec.DogName,
		&rec.ReporterID,
		&category,
		&visit,
		&rec.Hospital,
		&rec.Diagnosis,
		&rec.Treatment,
		&cost,
		r.tmap.SQLScanner(&vaccines),
		&photos,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return medical.Record{}, err
	}

	rec.DogID = dogID.String
	rec.Category = medical.Category(category)
	rec.VisitDate = fromNullDate(visit)
	if cost.Valid {
		c := int(cost.Int64)
		rec.Cost = &c
	}
	for _, v := range vaccines {
		rec.Vaccines = append(rec.Vaccines, medical.VaccineType(v))
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &rec.Photos); err != nil {
			return medical.Record{}, fmt.Errorf("postgres: decode photos: %w", err)
		}
	}
	return rec, nil
}

func photosOrEmpty(p []medical.Photo) []medical.Photo {
	if p == nil {
		return []medical.Photo{}
	}
	return p
}
