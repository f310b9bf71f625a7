package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/monthlyreports"
)

const monthlyColumns = `
	id, dog_id, dog_name, author_id, author_name,
	year, month, summary, health_notes, behavior_notes,
	created_at, updated_at`

type MonthlyReportsRepo struct {
	db *sql.DB
}

func NewMonthlyReportsRepo(db *sql.DB) *MonthlyReportsRepo {
	return &MonthlyReportsRepo{db: db}
}

func (r *MonthlyReportsRepo) Save(ctx context.Context, m monthlyreports.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO monthly_reports (`+monthlyColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			dog_id = excluded.dog_id,
			dog_name = excluded.dog_name,
			author_id = excluded.author_id,
			author_name = excluded.author_name,
			year = excluded.year,
			month = excluded.month,
			summary = excluded.summary,
			health_notes = excluded.health_notes,
			behavior_notes = excluded.behavior_notes,
			updated_at = excluded.updated_at
	`,
		m.ID,
		toNullString(m.DogID),
		m.DogName,
		m.AuthorID,
		m.AuthorName,
		m.Year,
		m.Month,
		m.Summary,
		m.HealthNotes,
		m.BehaviorNotes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MonthlyReportsRepo) GetByID(ctx context.Context, id string) (monthlyreports.Report, error) {
	return queryOne(ctx, r.db, `SELECT `+monthlyColumns+` FROM monthly_reports WHERE id = $1`, id, scanMonthly, monthlyreports.ErrNotFound)
}

func (r *MonthlyReportsRepo) List(ctx context.Context) ([]monthlyreports.Report, error) {
	return queryAll(ctx, r.db, `SELECT `+monthlyColumns+` FROM monthly_reports ORDER BY seq ASC`, scanMonthly)
}

func (r *MonthlyReportsRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "monthly_reports", id, monthlyreports.ErrNotFound)
}

func scanMonthly(s scanner) (monthlyreports.Report, error) {
	var m monthlyreports.Report
	var dogID sql.NullString
	if err := s.Scan(
		&m.ID,
		&dogID,
		&m.DogName,
		&m.AuthorID,
		&m.AuthorName,
		&m.Year,
		&m.Month,
		&m.Summary,
		&m.HealthNotes,
		&m.BehaviorNotes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return monthlyreports.Report{}, err
	}
	m.DogID = dogID.String
	return m, nil
}
