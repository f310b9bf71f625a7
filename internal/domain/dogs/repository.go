package dogs

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("dog not found")

type Repository interface {
	// List devuelve los perros en orden de inserción.
	List(ctx context.Context) ([]Dog, error)
	GetByID(ctx context.Context, id string) (Dog, error)
	// Save es upsert por ID.
	Save(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id string) error
}

// Namer lo usan los módulos de registros para completar DogName.
type Namer interface {
	NameOf(ctx context.Context, dogID string) (string, error)
}
