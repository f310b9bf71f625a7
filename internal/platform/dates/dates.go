// Package dates maneja las fechas de calendario (YYYY-MM-DD) que cargan los usuarios.
package dates

import (
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Parse devuelve la fecha y false si el string no es YYYY-MM-DD válido.
func Parse(s string) (time.Time, bool) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid acepta vacío (campo opcional) o una fecha válida.
func Valid(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := Parse(s)
	return ok
}

// InYear: una fecha inválida nunca cae dentro del período.
func InYear(s string, year int) bool {
	t, ok := Parse(s)
	return ok && t.Year() == year
}

func InMonth(s string, year, month int) bool {
	t, ok := Parse(s)
	return ok && t.Year() == year && int(t.Month()) == month
}
