package activities

import (
	"context"
	"errors"
	"strings"
	"time"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/platform/dates"
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
	ID         string
	DogID      string
	DogName    string
	AuthorID   string
	AuthorName string
	Date       string
	Title      string
	Content    string
}

// Save hace upsert; solo las altas publican DocumentCreated.
func (s *Service) Save(ctx context.Context, in SaveInput) (Activity, error) {
	title := strings.TrimSpace(in.Title)
	day := strings.TrimSpace(in.Date)
	if title == "" || day == "" || !dates.Valid(day) {
		return Activity{}, ErrInvalidInput
	}

	dogName, err := dogs.ResolveName(ctx, s.dogs, in.DogID, in.DogName)
	if err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return Activity{}, ErrInvalidInput
		}
		return Activity{}, err
	}
	if dogName == "" {
		return Activity{}, ErrInvalidInput
	}

	now := s.now()
	a := Activity{
		ID:         strings.TrimSpace(in.ID),
		DogID:      strings.TrimSpace(in.DogID),
		DogName:    dogName,
		AuthorID:   strings.TrimSpace(in.AuthorID),
		AuthorName: strings.TrimSpace(in.AuthorName),
		Date:       day,
		Title:      title,
		Content:    strings.TrimSpace(in.Content),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created := true
	if a.ID == "" {
		a.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, a.ID)
		switch {
		case err == nil:
			created = false
			a.CreatedAt = existing.CreatedAt
			a.AuthorID = existing.AuthorID
			a.AuthorName = existing.AuthorName
		case !errors.Is(err, ErrNotFound):
			return Activity{}, err
		}
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return Activity{}, err
	}

	if created {
		s.publish(ctx, a)
	}
	return a, nil
}

func (s *Service) publish(ctx context.Context, a Activity) {
	err := s.publisher.Publish(ctx, events.DocumentCreated{
		Collection: events.CollectionActivities,
		ID:         a.ID,
		Fields: map[string]string{
			"author": a.AuthorName,
			"dog":    a.DogName,
			"title":  a.Title,
		},
	})
	if err != nil {
		logger.FromContext(ctx, nil).Warn("publish document created failed", logger.Fields{
			"collection": events.CollectionActivities,
			"id":         a.ID,
			"err":        err,
		})
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Activity{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	DogID    string
	AuthorID string
	Year     int
	Month    int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Activity, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Activity, 0, len(items))
	for _, a := range items {
		if f.DogID != "" && a.DogID != f.DogID {
			continue
		}
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if f.Year != 0 {
			if f.Month != 0 && !dates.InMonth(a.Date, f.Year, f.Month) {
				continue
			}
			if f.Month == 0 && !dates.InYear(a.Date, f.Year) {
				continue
			}
		}
		out = append(out, a)
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
