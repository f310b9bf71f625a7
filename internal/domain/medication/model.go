package medication

import "time"

// Type de chequeo de medicación preventiva.
// @Enum heartworm, external_parasite, internal_parasite
type Type string

const (
	TypeHeartworm        Type = "heartworm"
	TypeExternalParasite Type = "external_parasite"
	TypeInternalParasite Type = "internal_parasite"
)

// Types fija el orden de columnas de la matriz de medicación.
var Types = []Type{
	TypeHeartworm,
	TypeExternalParasite,
	TypeInternalParasite,
}

func (t Type) Valid() bool {
	for _, k := range Types {
		if t == k {
			return true
		}
	}
	return false
}

type Check struct {
	ID string

	DogID      string
	DogName    string
	ReporterID string

	Type      Type
	CheckDate string // YYYY-MM-DD
	Note      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
