package postgres

import (
	"database/sql"

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

// Store agrupa los repos sobre un mismo pool; expone los mismos accessors que el store en memoria.
type Store struct {
	db *sql.DB

	dogs          *DogsRepo
	partners      *PartnersRepo
	activities    *ActivitiesRepo
	users         *UsersRepo
	monthly       *MonthlyReportsRepo
	boarding      *BoardingRepo
	medical       *MedicalRepo
	medication    *MedicationRepo
	notices       *NoticesRepo
	subscriptions *SubscriptionsRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		dogs:          NewDogsRepo(db),
		partners:      NewPartnersRepo(db),
		activities:    NewActivitiesRepo(db),
		users:         NewUsersRepo(db),
		monthly:       NewMonthlyReportsRepo(db),
		boarding:      NewBoardingRepo(db),
		medical:       NewMedicalRepo(db),
		medication:    NewMedicationRepo(db),
		notices:       NewNoticesRepo(db),
		subscriptions: NewSubscriptionsRepo(db),
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

func (s *Store) Close() error { return s.db.Close() }
