package boarding

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

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBadState     = errors.New("invalid state")
)

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
	RequesterID   string
	RequesterName string
	StartDate     string
	EndDate       string
	Reason        string
}

// Save hace upsert de la solicitud. El estado de revisión no se toca acá.
func (s *Service) Save(ctx context.Context, in SaveInput) (Form, error) {
	start := strings.TrimSpace(in.StartDate)
	end := strings.TrimSpace(in.EndDate)
	if start == "" || end == "" || !dates.Valid(start) || !dates.Valid(end) || end < start {
		return Form{}, ErrInvalidInput
	}

	dogName, err := dogs.ResolveName(ctx, s.dogs, in.DogID, in.DogName)
	if err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return Form{}, ErrInvalidInput
		}
		return Form{}, err
	}
	if dogName == "" {
		return Form{}, ErrInvalidInput
	}

	now := s.now()
	f := Form{
		ID:            strings.TrimSpace(in.ID),
		DogID:         strings.TrimSpace(in.DogID),
		DogName:       dogName,
		RequesterID:   strings.TrimSpace(in.RequesterID),
		RequesterName: strings.TrimSpace(in.RequesterName),
		StartDate:     start,
		EndDate:       end,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created := true
	if f.ID == "" {
		f.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, f.ID)
		switch {
		case err == nil:
			created = false
			f.CreatedAt = existing.CreatedAt
			f.RequesterID = existing.RequesterID
			f.RequesterName = existing.RequesterName
			f.Status = existing.Status
			f.ReviewerID = existing.ReviewerID
			f.ReviewNote = existing.ReviewNote
		case !errors.Is(err, ErrNotFound):
			return Form{}, err
		}
	}

	if err := s.repo.Save(ctx, f); err != nil {
		return Form{}, err
	}

	if created {
		err := s.publisher.Publish(ctx, events.DocumentCreated{
			Collection: events.CollectionBoardingForms,
			ID:         f.ID,
			Fields: map[string]string{
				"requester": f.RequesterName,
				"dog":       f.DogName,
				"start":     f.StartDate,
				"end":       f.EndDate,
			},
		})
		if err != nil {
			logger.FromContext(ctx, nil).Warn("publish document created failed", logger.Fields{
				"collection": events.CollectionBoardingForms,
				"id":         f.ID,
				"err":        err,
			})
		}
	}
	return f, nil
}

// Review aprueba o rechaza; solo desde pending, o para corregir una decisión previa.
func (s *Service) Review(ctx context.Context, id string, status Status, reviewerID, note string) (Form, error) {
	if status != StatusApproved && status != StatusRejected {
		return Form{}, ErrInvalidInput
	}
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return Form{}, err
	}
	if f.Status == status {
		return Form{}, ErrBadState
	}

	f.Status = status
	f.ReviewerID = strings.TrimSpace(reviewerID)
	f.ReviewNote = strings.TrimSpace(note)
	f.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, f); err != nil {
		return Form{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Form, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Form{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	DogID       string
	RequesterID string
	Status      Status
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Form, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Form, 0, len(items))
	for _, x := range items {
		if f.DogID != "" && x.DogID != f.DogID {
			continue
		}
		if f.RequesterID != "" && x.RequesterID != f.RequesterID {
			continue
		}
		if f.Status != "" && x.Status != f.Status {
			continue
		}
		out = append(out, x)
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
