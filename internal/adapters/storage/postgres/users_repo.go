package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/users"
)

const userColumns = `id, role, name, dog_name, password_hash, created_at, updated_at`

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Save(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			role = excluded.role,
			name = excluded.name,
			dog_name = excluded.dog_name,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at
	`,
		u.ID,
		string(u.Role),
		u.Name,
		u.DogName,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return queryOne(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE id = $1`, id, scanUser, users.ErrNotFound)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	return queryAll(ctx, r.db, `SELECT `+userColumns+` FROM users ORDER BY seq ASC`, scanUser)
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "users", id, users.ErrNotFound)
}

func scanUser(s scanner) (users.User, error) {
	var u users.User
	var role string
	if err := s.Scan(&u.ID, &role, &u.Name, &u.DogName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return users.User{}, err
	}
	u.Role = users.Role(role)
	return u, nil
}
