package activities

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("activity not found")

type Repository interface {
	List(ctx context.Context) ([]Activity, error)
	GetByID(ctx context.Context, id string) (Activity, error)
	Save(ctx context.Context, a Activity) error
	Delete(ctx context.Context, id string) error
}
