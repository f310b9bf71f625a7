package partners

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("partner not found")

type Repository interface {
	List(ctx context.Context) ([]Partner, error)
	GetByID(ctx context.Context, id string) (Partner, error)
	Save(ctx context.Context, p Partner) error
	Delete(ctx context.Context, id string) error
}
