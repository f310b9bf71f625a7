package postgres

import (
	"context"
	"database/sql"

	"guidedog-records/internal/domain/subscriptions"
)

const subscriptionColumns = `id, user_id, role, token, platform, created_at, updated_at`

type SubscriptionsRepo struct {
	db *sql.DB
}

func NewSubscriptionsRepo(db *sql.DB) *SubscriptionsRepo {
	return &SubscriptionsRepo{db: db}
}

// Save hace upsert por id; el servicio ya resolvió el id existente para el token.
func (r *SubscriptionsRepo) Save(ctx context.Context, s subscriptions.Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_subscriptions (`+subscriptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			role = excluded.role,
			token = excluded.token,
			platform = excluded.platform,
			updated_at = excluded.updated_at
	`,
		s.ID,
		s.UserID,
		s.Role,
		s.Token,
		s.Platform,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SubscriptionsRepo) GetByID(ctx context.Context, id string) (subscriptions.Subscription, error) {
	return queryOne(ctx, r.db, `SELECT `+subscriptionColumns+` FROM push_subscriptions WHERE id = $1`, id, scanSubscription, subscriptions.ErrNotFound)
}

func (r *SubscriptionsRepo) List(ctx context.Context) ([]subscriptions.Subscription, error) {
	return queryAll(ctx, r.db, `SELECT `+subscriptionColumns+` FROM push_subscriptions ORDER BY seq ASC`, scanSubscription)
}

func (r *SubscriptionsRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "push_subscriptions", id, subscriptions.ErrNotFound)
}

func scanSubscription(s scanner) (subscriptions.Subscription, error) {
	var sub subscriptions.Subscription
	if err := s.Scan(&sub.ID, &sub.UserID, &sub.Role, &sub.Token, &sub.Platform, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return subscriptions.Subscription{}, err
	}
	return sub, nil
}
