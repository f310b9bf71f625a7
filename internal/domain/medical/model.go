package medical

import "time"

// Category del registro médico.
// @Enum general, vaccination
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryVaccination Category = "vaccination"
)

func (c Category) Valid() bool {
	return c == CategoryGeneral || c == CategoryVaccination
}

type VaccineType string

const (
	VaccineRabies        VaccineType = "rabies"
	VaccineDHPP          VaccineType = "dhpp"
	VaccineLeptospirosis VaccineType = "leptospirosis"
	VaccineBordetella    VaccineType = "bordetella"
	VaccineCoronavirus   VaccineType = "coronavirus"
)

// VaccineTypes fija el orden de columnas de la matriz de vacunas.
var VaccineTypes = []VaccineType{
	VaccineRabies,
	VaccineDHPP,
	VaccineLeptospirosis,
	VaccineBordetella,
	VaccineCoronavirus,
}

func (v VaccineType) Valid() bool {
	for _, k := range VaccineTypes {
		if v == k {
			return true
		}
	}
	return false
}

// Photo apunta a un objeto del blob store; la imagen no viaja en el registro.
type Photo struct {
	ID          string
	Key         string
	ContentType string
}

type Record struct {
	ID string

	DogID      string
	DogName    string
	ReporterID string

	Category  Category
	VisitDate string // YYYY-MM-DD
	Hospital  string

	Diagnosis string
	Treatment string
	Cost      *int

	Vaccines []VaccineType
	Photos   []Photo

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Record) HasVaccine(v VaccineType) bool {
	for _, x := range r.Vaccines {
		if x == v {
			return true
		}
	}
	return false
}
