package monthlyreports

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("monthly report not found")

type Repository interface {
	List(ctx context.Context) ([]Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	Save(ctx context.Context, r Report) error
	Delete(ctx context.Context, id string) error
}
