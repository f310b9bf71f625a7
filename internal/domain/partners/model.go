package partners

import (
	"time"

	"guidedog-records/internal/domain/dogs"
)

// Partner es el cuidador responsable de un perro dentro de una categoría
// (usuario de perro guía, familia de cachorro, adoptante o cuidador de reproductor).
type Partner struct {
	ID string

	Name    string
	Phone   string
	Email   string
	Address string

	Category dogs.Category
	DogID    string // puede quedar vacío si el perro se borra

	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD, vacío = vigente
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active indica si la asignación sigue vigente en la fecha dada (YYYY-MM-DD).
func (p Partner) Active(day string) bool {
	if p.StartDate != "" && day < p.StartDate {
		return false
	}
	return p.EndDate == "" || day <= p.EndDate
}
