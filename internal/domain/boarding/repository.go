package boarding

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("boarding form not found")

type Repository interface {
	List(ctx context.Context) ([]Form, error)
	GetByID(ctx context.Context, id string) (Form, error)
	Save(ctx context.Context, f Form) error
	Delete(ctx context.Context, id string) error
}
