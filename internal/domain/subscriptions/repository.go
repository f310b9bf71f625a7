package subscriptions

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("subscription not found")

type Repository interface {
	List(ctx context.Context) ([]Subscription, error)
	GetByID(ctx context.Context, id string) (Subscription, error)
	Save(ctx context.Context, s Subscription) error
	Delete(ctx context.Context, id string) error
}
