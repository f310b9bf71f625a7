package events

import "context"

// Colecciones cuyas inserciones disparan notificaciones.
const (
	CollectionMonthlyReports = "monthly_reports"
	CollectionBoardingForms  = "boarding_forms"
	CollectionActivities     = "activities"
)

// DocumentCreated se publica cuando Save inserta un documento nuevo (no en updates).
type DocumentCreated struct {
	Collection string            `json:"collection"`
	ID         string            `json:"id"`
	Fields     map[string]string `json:"fields"`
}

type Publisher interface {
	Publish(ctx context.Context, e DocumentCreated) error
}

type nopPublisher struct{}

// Nop no publica nada (tests, o notificaciones deshabilitadas).
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, DocumentCreated) error { return nil }
