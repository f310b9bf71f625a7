package boarding

import "time"

// Status de la solicitud de hospedaje.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Form es la solicitud para dejar al perro en la escuela durante un período.
type Form struct {
	ID string

	DogID   string
	DogName string

	RequesterID   string
	RequesterName string

	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Reason    string

	Status     Status
	ReviewerID string
	ReviewNote string

	CreatedAt time.Time
	UpdatedAt time.Time
}
