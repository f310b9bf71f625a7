package reports

import (
	"context"
	"fmt"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/medical"
	"guidedog-records/internal/domain/medication"
)

type DogLister interface {
	List(ctx context.Context, category dogs.Category) ([]dogs.Dog, error)
}

type MedicalLister interface {
	All(ctx context.Context) ([]medical.Record, error)
}

type MedicationLister interface {
	All(ctx context.Context) ([]medication.Check, error)
}

// Service carga las colecciones y aplica las funciones puras. Un error de
// almacenamiento aborta el reporte.
type Service struct {
	dogs       DogLister
	medical    MedicalLister
	medication MedicationLister
}

func NewService(d DogLister, med MedicalLister, checks MedicationLister) *Service {
	return &Service{dogs: d, medical: med, medication: checks}
}

func (s *Service) Vaccines(ctx context.Context, category dogs.Category, year int) (Matrix, error) {
	all, err := s.dogs.List(ctx, "")
	if err != nil {
		return Matrix{}, fmt.Errorf("load dogs: %w", err)
	}
	records, err := s.medical.All(ctx)
	if err != nil {
		return Matrix{}, fmt.Errorf("load medical records: %w", err)
	}
	return VaccineMatrix(all, records, category, year), nil
}

func (s *Service) Medications(ctx context.Context, category dogs.Category, year, month int) (Matrix, error) {
	all, err := s.dogs.List(ctx, "")
	if err != nil {
		return Matrix{}, fmt.Errorf("load dogs: %w", err)
	}
	checks, err := s.medication.All(ctx)
	if err != nil {
		return Matrix{}, fmt.Errorf("load medication checks: %w", err)
	}
	return MedicationMatrix(all, checks, category, year, month), nil
}

func (s *Service) Costs(ctx context.Context, category dogs.Category, year int) (CostReport, error) {
	all, err := s.dogs.List(ctx, "")
	if err != nil {
		return CostReport{}, fmt.Errorf("load dogs: %w", err)
	}
	records, err := s.medical.All(ctx)
	if err != nil {
		return CostReport{}, fmt.Errorf("load medical records: %w", err)
	}
	return CostSummary(all, records, category, year), nil
}
