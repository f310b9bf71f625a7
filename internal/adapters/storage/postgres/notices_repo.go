package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgtype"

	"guidedog-records/internal/domain/notices"
)

const noticeColumns = `
	id, title, content, author_id, author_name,
	audience, pinned,
	created_at, updated_at`

type NoticesRepo struct {
	db   *sql.DB
	tmap *pgtype.Map
}

func NewNoticesRepo(db *sql.DB) *NoticesRepo {
	return &NoticesRepo{db: db, tmap: pgtype.NewMap()}
}

func (r *NoticesRepo) Save(ctx context.Context, n notices.Notice) error {
	audience := n.Audience
	if audience == nil {
		audience = []string{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notices (`+noticeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			author_id = excluded.author_id,
			author_name = excluded.author_name,
			audience = excluded.audience,
			pinned = excluded.pinned,
			updated_at = excluded.updated_at
	`,
		n.ID,
		n.Title,
		n.Content,
		n.AuthorID,
		n.AuthorName,
		audience,
		n.Pinned,
		n.CreatedAt,
		n.UpdatedAt,
	)
	return err
}

func (r *NoticesRepo) GetByID(ctx context.Context, id string) (notices.Notice, error) {
	return queryOne(ctx, r.db, `SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id, r.scan, notices.ErrNotFound)
}

func (r *NoticesRepo) List(ctx context.Context) ([]notices.Notice, error) {
	return queryAll(ctx, r.db, `SELECT `+noticeColumns+` FROM notices ORDER BY seq ASC`, r.scan)
}

func (r *NoticesRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "notices", id, notices.ErrNotFound)
}

func (r *NoticesRepo) scan(s scanner) (notices.Notice, error) {
	var n notices.Notice
	if err := s.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.AuthorID,
		&n.AuthorName,
		r.tmap.SQLScanner(&n.Audience),
		&n.Pinned,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return notices.Notice{}, err
	}
	return n, nil
}
