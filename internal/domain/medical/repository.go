package medical

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("medical record not found")

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Save(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
}
