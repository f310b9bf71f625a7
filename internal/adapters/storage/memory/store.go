// Package memory es el driver de almacenamiento por defecto: todo en memoria del proceso.
package memory

import (
	"errors"

	"guidedog-records/internal/domain/activities"
	"guidedog-records/internal/domain/boarding"
	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/medical"
	"guidedog-records/internal/domain/medication"
	"guidedog-records/internal/domain/monthlyreports"
	"guidedog-records/internal/domain/notices"
	"guidedog-records/internal/domain/partners"
	"guidedog-records/internal/domain/subscriptions"
	"guidedog-records/internal/domain/users"
)

var errIDRequired = errors.New("memory: id required")

// Nombres lógicos de las colecciones.
const (
	CollectionDogs              = "dogs"
	CollectionPartners          = "partners"
	CollectionActivities        = "activities"
	CollectionUsers             = "users"
	CollectionMonthlyReports    = "monthly_reports"
	CollectionBoardingForms     = "boarding_forms"
	CollectionMedicalRecords    = "medical_records"
	CollectionMedicationChecks  = "medication_checks"
	CollectionNotices           = "notices"
	CollectionPushSubscriptions = "push_subscriptions"
)

// Snapshotter lo implementa cada colección; lo usa el driver sqlite.
type Snapshotter interface {
	Name() string
	Snapshot() ([]byte, error)
	Restore(payload []byte) error
}

type Store struct {
	dogs          *collection[dogs.Dog]
	partners      *collection[partners.Partner]
	activities    *collection[activities.Activity]
	users         *collection[users.User]
	monthly       *collection[monthlyreports.Report]
	boarding      *collection[boarding.Form]
	medical       *collection[medical.Record]
	medication    *collection[medication.Check]
	notices       *collection[notices.Notice]
	subscriptions *collection[subscriptions.Subscription]
}

func New() *Store {
	return &Store{
		dogs:          newCollection(CollectionDogs, func(v dogs.Dog) string { return v.ID }, dogs.ErrNotFound),
		partners:      newCollection(CollectionPartners, func(v partners.Partner) string { return v.ID }, partners.ErrNotFound),
		activities:    newCollection(CollectionActivities, func(v activities.Activity) string { return v.ID }, activities.ErrNotFound),
		users:         newCollection(CollectionUsers, func(v users.User) string { return v.ID }, users.ErrNotFound),
		monthly:       newCollection(CollectionMonthlyReports, func(v monthlyreports.Report) string { return v.ID }, monthlyreports.ErrNotFound),
		boarding:      newCollection(CollectionBoardingForms, func(v boarding.Form) string { return v.ID }, boarding.ErrNotFound),
		medical:       newCollection(CollectionMedicalRecords, func(v medical.Record) string { return v.ID }, medical.ErrNotFound),
		medication:    newCollection(CollectionMedicationChecks, func(v medication.Check) string { return v.ID }, medication.ErrNotFound),
		notices:       newCollection(CollectionNotices, func(v notices.Notice) string { return v.ID }, notices.ErrNotFound),
		subscriptions: newCollection(CollectionPushSubscriptions, func(v subscriptions.Subscription) string { return v.ID }, subscriptions.ErrNotFound),
	}
}

// OnChange registra un hook que recibe el nombre de la colección después de
// cada Save/Delete. Configurar antes de servir tráfico.
func (s *Store) OnChange(fn func(collection string) error) {
	s.dogs.changed = fn
	s.partners.changed = fn
	s.activities.changed = fn
	s.users.changed = fn
	s.monthly.changed = fn
	s.boarding.changed = fn
	s.medical.changed = fn
	s.medication.changed = fn
	s.notices.changed = fn
	s.subscriptions.changed = fn
}

// Collections en el orden de los nombres lógicos.
func (s *Store) Collections() []Snapshotter {
	return []Snapshotter{
		s.dogs, s.partners, s.activities, s.users, s.monthly,
		s.boarding, s.medical, s.medication, s.notices, s.subscriptions,
	}
}

func (s *Store) Dogs() dogs.Repository { return s.dogs }
func (s *Store) Partners() partners.Repository { return s.partners }
func (s *Store) Activities() activities.Repository { return s.activities }
func (s *Store) Users() users.Repository { return s.users }
func (s *Store) MonthlyReports() monthlyreports.Repository { return s.monthly }
func (s *Store) BoardingForms() boarding.Repository { return s.boarding }
func (s *Store) MedicalRecords() medical.Repository { return s.medical }
func (s *Store) MedicationChecks() medication.Repository { return s.medication }
func (s *Store) Notices() notices.Repository { return s.notices }
func (s *Store) Subscriptions() subscriptions.Repository { return s.subscriptions }
