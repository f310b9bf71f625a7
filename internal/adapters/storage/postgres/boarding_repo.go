package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/boarding"
)

const boardingColumns = `
	id, dog_id, dog_name, requester_id, requester_name,
	start_date, end_date, reason,
	status, reviewer_id, review_note,
	created_at, updated_at`

type BoardingRepo struct {
	db *sql.DB
}

func NewBoardingRepo(db *sql.DB) *BoardingRepo {
	return &BoardingRepo{db: db}
}

func (r *BoardingRepo) Save(ctx context.Context, f boarding.Form) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO boarding_forms (`+boardingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			dog_id = excluded.dog_id,
			dog_name = excluded.dog_name,
			requester_id = excluded.requester_id,
			requester_name = excluded.requester_name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			reason = excluded.reason,
			status = excluded.status,
			reviewer_id = excluded.reviewer_id,
			review_note = excluded.review_note,
			updated_at = excluded.updated_at
	`,
		f.ID,
		toNullString(f.DogID),
		f.DogName,
		f.RequesterID,
		f.RequesterName,
		toNullDate(f.StartDate),
		toNullDate(f.EndDate),
		f.Reason,
		string(f.Status),
		f.ReviewerID,
		f.ReviewNote,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *BoardingRepo) GetByID(ctx context.Context, id string) (boarding.Form, error) {
	return queryOne(ctx, r.db, `SELECT `+boardingColumns+` FROM boarding_forms WHERE id = $1`, id, scanBoarding, boarding.ErrNotFound)
}

func (r *BoardingRepo) List(ctx context.Context) ([]boarding.Form, error) {
	return queryAll(ctx, r.db, `SELECT `+boardingColumns+` FROM boarding_forms ORDER BY seq ASC`, scanBoarding)
}

func (r *BoardingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "boarding_forms", id, boarding.ErrNotFound)
}

func scanBoarding(s scanner) (boarding.Form, error) {
	var f boarding.Form
	var dogID sql.NullString
	var start, end sql.NullTime
	var status string
	if err := s.Scan(
		&f.ID,
		&dogID,
		&f.DogName,
		&f.RequesterID,
		&f.RequesterName,
		&start,
		&end,
		&f.Reason,
		&status,
		&f.ReviewerID,
		&f.ReviewNote,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return boarding.Form{}, err
	}
	f.DogID = dogID.String
	f.StartDate = fromNullDate(start)
	f.EndDate = fromNullDate(end)
	f.Status = boarding.Status(status)
	return f, nil
}
