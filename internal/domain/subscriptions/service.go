package subscriptions

import (
	"context"
	"errors"
	"strings"
	"time"

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

type RegisterInput struct {
	UserID   string
	Role     string
	Token    string
	Platform string
}

// Register hace upsert por token: si el dispositivo ya estaba registrado
// (incluso por otro usuario) se reasigna al usuario actual.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Subscription, error) {
	token := strings.TrimSpace(in.Token)
	userID := strings.TrimSpace(in.UserID)
	if token == "" || userID == "" {
		return Subscription{}, ErrInvalidInput
	}
	platform := strings.ToLower(strings.TrimSpace(in.Platform))
	if platform == "" {
		platform = "web"
	}

	now := s.now()
	sub := Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      strings.TrimSpace(in.Role),
		Token:     token,
		Platform:  platform,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.findByToken(ctx, token)
	switch {
	case err == nil:
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return Subscription{}, err
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

func (s *Service) findByToken(ctx context.Context, token string) (Subscription, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Subscription{}, err
	}
	for _, x := range items {
		if x.Token == token {
			return x, nil
		}
	}
	return Subscription{}, ErrNotFound
}

func (s *Service) List(ctx context.Context) ([]Subscription, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByRole(ctx context.Context, role string) ([]Subscription, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Subscription, 0, len(items))
	for _, x := range items {
		if x.Role == role {
			out = append(out, x)
		}
	}
	return out, nil
}

// DeleteByToken borra la suscripción del token. Si userID no es vacío,
// solo la borra si pertenece a ese usuario.
func (s *Service) DeleteByToken(ctx context.Context, token, userID string) error {
	sub, err := s.findByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if userID != "" && sub.UserID != userID {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, sub.ID)
}

// DeleteTokens borra todas las suscripciones de los tokens dados y devuelve
// cuántas borró. Lo usa la poda de tokens inválidos.
func (s *Service) DeleteTokens(ctx context.Context, tokens []string) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	drop := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		drop[t] = struct{}{}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	var (
		n    int
		errs []error
	)
	for _, x := range items {
		if _, ok := drop[x.Token]; !ok {
			continue
		}
		if err := s.repo.Delete(ctx, x.ID); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}
