package notices

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"guidedog-records/internal/domain/users"

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
	ID         string
	Title      string
	Content    string
	AuthorID   string
	AuthorName string
	Audience   []string
	Pinned     bool
}

func (s *Service) Save(ctx context.Context, in SaveInput) (Notice, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Notice{}, ErrInvalidInput
	}
	audience, err := normalizeAudience(in.Audience)
	if err != nil {
		return Notice{}, err
	}

	now := s.now()
	n := Notice{
		ID:         strings.TrimSpace(in.ID),
		Title:      title,
		Content:    strings.TrimSpace(in.Content),
		AuthorID:   strings.TrimSpace(in.AuthorID),
		AuthorName: strings.TrimSpace(in.AuthorName),
		Audience:   audience,
		Pinned:     in.Pinned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, n.ID)
		switch {
		case err == nil:
			n.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrNotFound):
			return Notice{}, err
		}
	}

	if err := s.repo.Save(ctx, n); err != nil {
		return Notice{}, err
	}
	return n, nil
}

// normalizeAudience: vacío => all; "all" absorbe al resto.
func normalizeAudience(in []string) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if a == AudienceAll {
			return []string{AudienceAll}, nil
		}
		if !users.Role(a).Valid() {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	if len(out) == 0 {
		return []string{AudienceAll}, nil
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Notice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Notice{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListFor devuelve los avisos visibles para el rol: fijados primero, después
// del más nuevo al más viejo.
func (s *Service) ListFor(ctx context.Context, role string) ([]Notice, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Notice, 0, len(items))
	for _, n := range items {
		if n.VisibleTo(role) {
			out = append(out, n)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
