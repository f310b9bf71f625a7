package medication

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("medication check not found")

type Repository interface {
	List(ctx context.Context) ([]Check, error)
	GetByID(ctx context.Context, id string) (Check, error)
	Save(ctx context.Context, c Check) error
	Delete(ctx context.Context, id string) error
}
