package medical

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/platform/dates"
	"guidedog-records/internal/ports/blob"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrPhotoCleanup: el registro se borró pero quedaron fotos en el blob store.
	ErrPhotoCleanup = errors.New("photo cleanup failed")
)

type Service struct {
	repo  Repository
	dogs  dogs.Namer
	blobs blob.Store
	now   func() time.Time
}

func NewService(repo Repository, names dogs.Namer, blobs blob.Store) *Service {
	return &Service{
		repo:  repo,
		dogs:  names,
		blobs: blobs,
		now:   time.Now,
	}
}

type SaveInput struct {
	ID         string
	DogID      string
	DogName    string
	ReporterID string
	Category   Category
	VisitDate  string
	Hospital   string
	Diagnosis  string
	Treatment  string
	Cost       *int
	Vaccines   []VaccineType
}

// Save hace upsert. Las fotos no se tocan acá (ver AddPhoto/DeletePhoto).
func (s *Service) Save(ctx context.Context, in SaveInput) (Record, error) {
	if !in.Category.Valid() {
		return Record{}, ErrInvalidInput
	}
	visit := strings.TrimSpace(in.VisitDate)
	if visit == "" || !dates.Valid(visit) {
		return Record{}, ErrInvalidInput
	}
	if in.Cost != nil && *in.Cost < 0 {
		return Record{}, ErrInvalidInput
	}

	vaccines, err := normalizeVaccines(in.Category, in.Vaccines)
	if err != nil {
		return Record{}, err
	}

	dogName, err := dogs.ResolveName(ctx, s.dogs, in.DogID, in.DogName)
	if err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return Record{}, ErrInvalidInput
		}
		return Record{}, err
	}
	if dogName == "" {
		return Record{}, ErrInvalidInput
	}

	now := s.now()
	rec := Record{
		ID:         strings.TrimSpace(in.ID),
		DogID:      strings.TrimSpace(in.DogID),
		DogName:    dogName,
		ReporterID: strings.TrimSpace(in.ReporterID),
		Category:   in.Category,
		VisitDate:  visit,
		Hospital:   strings.TrimSpace(in.Hospital),
		Diagnosis:  strings.TrimSpace(in.Diagnosis),
		Treatment:  strings.TrimSpace(in.Treatment),
		Cost:       in.Cost,
		Vaccines:   vaccines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, rec.ID)
		switch {
		case err == nil:
			rec.CreatedAt = existing.CreatedAt
			rec.Photos = existing.Photos
			if rec.ReporterID == "" {
				rec.ReporterID = existing.ReporterID
			}
		case !errors.Is(err, ErrNotFound):
			return Record{}, err
		}
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// normalizeVaccines: solo los registros de vacunación llevan vacunas; sin duplicados.
func normalizeVaccines(cat Category, in []VaccineType) ([]VaccineType, error) {
	if cat != CategoryVaccination {
		if len(in) > 0 {
			return nil, ErrInvalidInput
		}
		return nil, nil
	}
	if len(in) == 0 {
		return nil, ErrInvalidInput
	}

	seen := map[VaccineType]struct{}{}
	out := make([]VaccineType, 0, len(in))
	for _, v := range in {
		v = VaccineType(strings.ToLower(strings.TrimSpace(string(v))))
		if !v.Valid() {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type ListFilter struct {
	DogID    string
	Category Category
	Year     int // 0 = todos
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(items))
	for _, r := range items {
		if f.DogID != "" && r.DogID != f.DogID {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Year != 0 && !dates.InYear(r.VisitDate, f.Year) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// All devuelve la colección completa (reportes).
func (s *Service) All(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// Delete borra el registro y después sus fotos; si falla el borrado de una
// foto el registro ya no existe y el objeto queda huérfano.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, rec.ID); err != nil {
		return err
	}

	if s.blobs == nil {
		return nil
	}
	var errs []error
	for _, p := range rec.Photos {
		if _, err := s.blobs.Delete(ctx, p.Key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrPhotoCleanup, err)
	}
	return nil
}
