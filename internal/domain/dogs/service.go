package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"guidedog-records/internal/platform/dates"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type SaveInput struct {
	ID        string // vacío => alta
	Name      string
	Category  Category
	Breed     string
	Sex       Sex
	BirthDate string
	Microchip string
	Caregiver Caregiver
	Notes     string
}

// Save hace upsert: si el ID existe reemplaza los campos y actualiza UpdatedAt,
// si no existe lo agrega con CreatedAt = UpdatedAt = now.
func (s *Service) Save(ctx context.Context, in SaveInput) (Dog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.Category.Valid() {
		return Dog{}, ErrInvalidInput
	}
	if !dates.Valid(in.BirthDate) {
		return Dog{}, ErrInvalidInput
	}
	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}

	now := s.now()
	d := Dog{
		ID:        strings.TrimSpace(in.ID),
		Name:      name,
		Category:  in.Category,
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: strings.TrimSpace(in.BirthDate),
		Microchip: strings.TrimSpace(in.Microchip),
		Caregiver: Caregiver{
			Name:  strings.TrimSpace(in.Caregiver.Name),
			Phone: strings.TrimSpace(in.Caregiver.Phone),
			Email: strings.TrimSpace(in.Caregiver.Email),
		},
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, d.ID)
		switch {
		case err == nil:
			d.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrNotFound):
			return Dog{}, err
		}
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve todos los perros, o solo los de una categoría si category != "".
func (s *Service) List(ctx context.Context, category Category) ([]Dog, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return items, nil
	}

	out := make([]Dog, 0, len(items))
	for _, d := range items {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// NameOf implementa Namer.
func (s *Service) NameOf(ctx context.Context, dogID string) (string, error) {
	d, err := s.GetByID(ctx, dogID)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// ResolveName devuelve el nombre a guardar junto a un registro del perro.
// Con dogID y namer manda el nombre actual del perro; sin dogID (registros
// legacy) se conserva dogName tal cual.
func ResolveName(ctx context.Context, n Namer, dogID, dogName string) (string, error) {
	dogID = strings.TrimSpace(dogID)
	dogName = strings.TrimSpace(dogName)
	if dogID == "" || n == nil {
		return dogName, nil
	}
	return n.NameOf(ctx, dogID)
}
