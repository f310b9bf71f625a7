package notify

import (
	"strings"

	"guidedog-records/internal/ports/events"
)

// Trigger describe la notificación de una colección monitoreada.
type Trigger struct {
	Collection string
	// Path es el segmento de URL del documento en la app.
	Path  string
	Title string
	// Body usa placeholders {campo} con los Fields del evento.
	Body string
	// PruneInvalid borra las suscripciones con token rechazado.
	PruneInvalid bool
}

// DefaultTriggers: solo el diario poda tokens inválidos.
var DefaultTriggers = []Trigger{
	{
		Collection: events.CollectionMonthlyReports,
		Path:       "monthly-reports",
		Title:      "New monthly report",
		Body:       "{author} submitted the {year}/{month} report for {dog}",
	},
	{
		Collection: events.CollectionBoardingForms,
		Path:       "boarding-forms",
		Title:      "New boarding form",
		Body:       "{requester} requested boarding for {dog} ({start} ~ {end})",
	},
	{
		Collection:   events.CollectionActivities,
		Path:         "activities",
		Title:        "New diary entry",
		Body:         "{author} wrote about {dog}: {title}",
		PruneInvalid: true,
	},
}

// render reemplaza {k} por fields[k]; un placeholder sin valor queda vacío.
func render(tmpl string, fields map[string]string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			b.WriteString(tmpl)
			break
		}
		b.WriteString(tmpl[:open])
		b.WriteString(fields[tmpl[open+1:open+end]])
		tmpl = tmpl[open+end+1:]
	}
	return b.String()
}
