package monthlyreports

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/ports/events"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo      Repository
	dogs      dogs.Namer
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, names dogs.Namer, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{
		repo:      repo,
		dogs:      names,
		publisher: publisher,
		now:       time.Now,
	}
}

type SaveInput struct {
	ID            string
	DogID         string
	DogName       string
	AuthorID      string
	AuthorName    string
	Year          int
	Month         int
	Summary       string
	HealthNotes   string
	BehaviorNotes string
}

func (s *Service) Save(ctx context.Context, in SaveInput) (Report, error) {
	if in.Year < 2000 || in.Year > 2100 || in.Month < 1 || in.Month > 12 {
		return Report{}, ErrInvalidInput
	}

	dogName, err := dogs.ResolveName(ctx, s.dogs, in.DogID, in.DogName)
	if err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return Report{}, ErrInvalidInput
		}
		return Report{}, err
	}
	if dogName == "" {
		return Report{}, ErrInvalidInput
	}

	now := s.now()
	r := Report{
		ID:            strings.TrimSpace(in.ID),
		DogID:         strings.TrimSpace(in.DogID),
		DogName:       dogName,
		AuthorID:      strings.TrimSpace(in.AuthorID),
		AuthorName:    strings.TrimSpace(in.AuthorName),
		Year:          in.Year,
		Month:         in.Month,
		Summary:       strings.TrimSpace(in.Summary),
		HealthNotes:   strings.TrimSpace(in.HealthNotes),
		BehaviorNotes: strings.TrimSpace(in.BehaviorNotes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created := true
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, r.ID)
		switch {
		case err == nil:
			created = false
			r.CreatedAt = existing.CreatedAt
			r.AuthorID = existing.AuthorID
			r.AuthorName = existing.AuthorName
		case !errors.Is(err, ErrNotFound):
			return Report{}, err
		}
	}

	if err := s.repo.Save(ctx, r); err != nil {
		return Report{}, err
	}

	if created {
		err := s.publisher.Publish(ctx, events.DocumentCreated{
			Collection: events.CollectionMonthlyReports,
			ID:         r.ID,
			Fields: map[string]string{
				"author": r.AuthorName,
				"dog":    r.DogName,
				"year":   strconv.Itoa(r.Year),
				"month":  strconv.Itoa(r.Month),
			},
		})
		if err != nil {
			logger.FromContext(ctx, nil).Warn("publish document created failed", logger.Fields{
				"collection": events.CollectionMonthlyReports,
				"id":         r.ID,
				"err":        err,
			})
		}
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Report, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Report{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	DogID string
	Year  int
	Month int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Report, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Report, 0, len(items))
	for _, r := range items {
		if f.DogID != "" && r.DogID != f.DogID {
			continue
		}
		if f.Year != 0 && r.Year != f.Year {
			continue
		}
		if f.Month != 0 && r.Month != f.Month {
			continue
		}
		out = append(out, r)
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
