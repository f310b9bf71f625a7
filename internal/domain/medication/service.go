package medication

import (
	"context"
	"errors"
	"strings"
	"time"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/platform/dates"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	dogs dogs.Namer
	now  func() time.Time
}

func NewService(repo Repository, names dogs.Namer) *Service {
	return &Service{
		repo: repo,
		dogs: names,
		now:  time.Now,
	}
}

type SaveInput struct {
	ID         string
	DogID      string
	DogName    string
	ReporterID string
	Type       Type
	CheckDate  string
	Note       string
}

func (s *Service) Save(ctx context.Context, in SaveInput) (Check, error) {
	if !in.Type.Valid() {
		return Check{}, ErrInvalidInput
	}
	day := strings.TrimSpace(in.CheckDate)
	if day == "" || !dates.Valid(day) {
		return Check{}, ErrInvalidInput
	}

	dogName, err := dogs.ResolveName(ctx, s.dogs, in.DogID, in.DogName)
	if err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return Check{}, ErrInvalidInput
		}
		return Check{}, err
	}
	if dogName == "" {
		return Check{}, ErrInvalidInput
	}

	now := s.now()
	c := Check{
		ID:         strings.TrimSpace(in.ID),
		DogID:      strings.TrimSpace(in.DogID),
		DogName:    dogName,
		ReporterID: strings.TrimSpace(in.ReporterID),
		Type:       in.Type,
		CheckDate:  day,
		Note:       strings.TrimSpace(in.Note),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, c.ID)
		switch {
		case err == nil:
			c.CreatedAt = existing.CreatedAt
			if c.ReporterID == "" {
				c.ReporterID = existing.ReporterID
			}
		case !errors.Is(err, ErrNotFound):
			return Check{}, err
		}
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return Check{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Check, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Check{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	DogID string
	Type  Type
	Year  int // 0 = todos
	Month int // 0 = todos; solo aplica con Year
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Check, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Check, 0, len(items))
	for _, c := range items {
		if f.DogID != "" && c.DogID != f.DogID {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.Year != 0 {
			if f.Month != 0 && !dates.InMonth(c.CheckDate, f.Year, f.Month) {
				continue
			}
			if f.Month == 0 && !dates.InYear(c.CheckDate, f.Year) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// All devuelve la colección completa (reportes).
func (s *Service) All(ctx context.Context) ([]Check, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
