package notices

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("notice not found")

type Repository interface {
	List(ctx context.Context) ([]Notice, error)
	GetByID(ctx context.Context, id string) (Notice, error)
	Save(ctx context.Context, n Notice) error
	Delete(ctx context.Context, id string) error
}
