package monthlyreports

import "time"

// Report es el informe mensual que entrega el cuidador sobre el perro.
type Report struct {
	ID string

	DogID   string
	DogName string

	AuthorID   string
	AuthorName string

	Year  int
	Month int // 1-12

	Summary       string
	HealthNotes   string
	BehaviorNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
