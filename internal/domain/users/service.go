package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateID        = errors.New("user id already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 4

type Service struct {
	repo Repository
	now  func() time.Time
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		cost: bcrypt.DefaultCost,
	}
}

type CreateInput struct {
	ID       string
	Password string
	Role     Role
	Name     string
	DogName  string
}

// Create registra una cuenta nueva; el ID debe ser único.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	id := strings.TrimSpace(in.ID)
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" || !in.Role.Valid() || len(in.Password) < minPasswordLen {
		return User{}, ErrInvalidInput
	}

	_, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil:
		return User{}, ErrDuplicateID
	case !errors.Is(err, ErrNotFound):
		return User{}, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           id,
		Role:         in.Role,
		Name:         name,
		DogName:      strings.TrimSpace(in.DogName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type UpdateInput struct {
	Role    *Role
	Name    *string
	DogName *string

	// Password opcional: reset por admin.
	Password *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return User{}, ErrInvalidInput
		}
		u.Role = *in.Role
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return User{}, ErrInvalidInput
		}
		u.Name = name
	}
	if in.DogName != nil {
		u.DogName = strings.TrimSpace(*in.DogName)
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return User{}, ErrInvalidInput
		}
		hash, err := s.hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Authenticate compara contra el hash guardado. Usuario inexistente y
// password incorrecto devuelven el mismo error.
func (s *Service) Authenticate(ctx context.Context, id, password string) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < minPasswordLen {
		return ErrInvalidInput
	}
	if _, err := s.Authenticate(ctx, id, current); err != nil {
		return err
	}
	_, err := s.Update(ctx, id, UpdateInput{Password: &next})
	return err
}

// EnsureBootstrapAdmin crea la cuenta admin inicial solo si no hay usuarios.
// Devuelve true si la creó.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, id, password string) (bool, error) {
	if strings.TrimSpace(id) == "" || password == "" {
		return false, nil
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	_, err = s.Create(ctx, CreateInput{ID: id, Password: password, Role: RoleAdmin, Name: "Administrator"})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
