package partners

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
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type SaveInput struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Category  dogs.Category
	DogID     string
	StartDate string
	EndDate   string
	Notes     string
}

func (s *Service) Save(ctx context.Context, in SaveInput) (Partner, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.Category.Valid() {
		return Partner{}, ErrInvalidInput
	}
	start := strings.TrimSpace(in.StartDate)
	end := strings.TrimSpace(in.EndDate)
	if !dates.Valid(start) || !dates.Valid(end) {
		return Partner{}, ErrInvalidInput
	}
	if start != "" && end != "" && end < start {
		return Partner{}, ErrInvalidInput
	}

	now := s.now()
	p := Partner{
		ID:        strings.TrimSpace(in.ID),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Category:  in.Category,
		DogID:     strings.TrimSpace(in.DogID),
		StartDate: start,
		EndDate:   end,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, p.ID)
		switch {
		case err == nil:
			p.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrNotFound):
			return Partner{}, err
		}
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return Partner{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Partner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Partner{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	Category dogs.Category
	DogID    string
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Partner, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Partner, 0, len(items))
	for _, p := range items {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.DogID != "" && p.DogID != f.DogID {
			continue
		}
		out = append(out, p)
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
