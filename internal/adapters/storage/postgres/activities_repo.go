package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/activities"
)

const activityColumns = `
	id, dog_id, dog_name, author_id, author_name,
	date, title, content,
	created_at, updated_at`

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

func (r *ActivitiesRepo) Save(ctx context.Context, a activities.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			dog_id = excluded.dog_id,
			dog_name = excluded.dog_name,
			author_id = excluded.author_id,
			author_name = excluded.author_name,
			date = excluded.date,
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at
	`,
		a.ID,
		toNullString(a.DogID),
		a.DogName,
		a.AuthorID,
		a.AuthorName,
		toNullDate(a.Date),
		a.Title,
		a.Content,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *ActivitiesRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	return queryOne(ctx, r.db, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id, scanActivity, activities.ErrNotFound)
}

func (r *ActivitiesRepo) List(ctx context.Context) ([]activities.Activity, error) {
	return queryAll(ctx, r.db, `SELECT `+activityColumns+` FROM activities ORDER BY seq ASC`, scanActivity)
}

func (r *ActivitiesRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "activities", id, activities.ErrNotFound)
}

func scanActivity(s scanner) (activities.Activity, error) {
	var a activities.Activity
	var dogID sql.NullString
	var day sql.NullTime
	if err := s.Scan(
		&a.ID,
		&dogID,
		&a.DogName,
		&a.AuthorID,
		&a.AuthorName,
		&day,
		&a.Title,
		&a.Content,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return activities.Activity{}, err
	}
	a.DogID = dogID.String
	a.Date = fromNullDate(day)
	return a, nil
}
