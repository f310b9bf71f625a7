// Package reports arma las tablas de control sanitario (vacunas, medicación, costos)
// a partir de las colecciones ya cargadas. Las funciones de este archivo son puras.
package reports

import (
	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/medical"
	"guidedog-records/internal/domain/medication"
	"guidedog-records/internal/platform/dates"
)

// Entry es un registro dentro de una celda.
type Entry struct {
	RecordID string `json:"record_id"`
	Date     string `json:"date"`
	Detail   string `json:"detail"` // hospital (vacunas) o nota (medicación)
}

type Cell struct {
	Column  string  `json:"column"`
	Entries []Entry `json:"entries"`
}

type Row struct {
	DogID   string `json:"dog_id"`
	DogName string `json:"dog_name"`
	Cells   []Cell `json:"cells"`
}

type Matrix struct {
	Category dogs.Category `json:"category"`
	Year     int           `json:"year"`
	Month    int           `json:"month,omitempty"`
	Columns  []string      `json:"columns"`
	Rows     []Row         `json:"rows"`
}

// categoryPredicates decide qué perros entran en cada tabla.
var categoryPredicates = map[dogs.Category]func(dogs.Dog) bool{
	dogs.CategoryGuideDog:       func(d dogs.Dog) bool { return d.Category == dogs.CategoryGuideDog },
	dogs.CategoryPuppy:          func(d dogs.Dog) bool { return d.Category == dogs.CategoryPuppy },
	dogs.CategoryRetired:        func(d dogs.Dog) bool { return d.Category == dogs.CategoryRetired },
	dogs.CategoryBreedingParent: func(d dogs.Dog) bool { return d.Category == dogs.CategoryBreedingParent },
}

// dogsIn conserva el orden de almacenamiento. Categoría desconocida => nil.
func dogsIn(all []dogs.Dog, category dogs.Category) []dogs.Dog {
	pred, ok := categoryPredicates[category]
	if !ok {
		return nil
	}
	out := make([]dogs.Dog, 0, len(all))
	for _, d := range all {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// belongsTo: por DogID; los registros legacy sin DogID se comparan por nombre.
func belongsTo(d dogs.Dog, dogID, dogName string) bool {
	if dogID != "" {
		return dogID == d.ID
	}
	return dogName != "" && dogName == d.Name
}

// VaccineMatrix: una fila por perro de la categoría, una columna por vacuna,
// solo registros de vacunación con fecha de visita dentro del año.
func VaccineMatrix(all []dogs.Dog, records []medical.Record, category dogs.Category, year int) Matrix {
	columns := make([]string, 0, len(medical.VaccineTypes))
	for _, v := range medical.VaccineTypes {
		columns = append(columns, string(v))
	}

	m := Matrix{Category: category, Year: year, Columns: columns, Rows: []Row{}}
	for _, d := range dogsIn(all, category) {
		row := Row{DogID: d.ID, DogName: d.Name, Cells: make([]Cell, 0, len(columns))}
		for _, v := range medical.VaccineTypes {
			cell := Cell{Column: string(v), Entries: []Entry{}}
			for _, r := range records {
				if r.Category != medical.CategoryVaccination || !r.HasVaccine(v) {
					continue
				}
				if !belongsTo(d, r.DogID, r.DogName) || !dates.InYear(r.VisitDate, year) {
					continue
				}
				cell.Entries = append(cell.Entries, Entry{RecordID: r.ID, Date: r.VisitDate, Detail: r.Hospital})
			}
			row.Cells = append(row.Cells, cell)
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// MedicationMatrix: igual que VaccineMatrix pero por tipo de medicación y mes.
func MedicationMatrix(all []dogs.Dog, checks []medication.Check, category dogs.Category, year, month int) Matrix {
	columns := make([]string, 0, len(medication.Types))
	for _, t := range medication.Types {
		columns = append(columns, string(t))
	}

	m := Matrix{Category: category, Year: year, Month: month, Columns: columns, Rows: []Row{}}
	for _, d := range dogsIn(all, category) {
		row := Row{DogID: d.ID, DogName: d.Name, Cells: make([]Cell, 0, len(columns))}
		for _, t := range medication.Types {
			cell := Cell{Column: string(t), Entries: []Entry{}}
			for _, c := range checks {
				if c.Type != t || !belongsTo(d, c.DogID, c.DogName) {
					continue
				}
				if !dates.InMonth(c.CheckDate, year, month) {
					continue
				}
				cell.Entries = append(cell.Entries, Entry{RecordID: c.ID, Date: c.CheckDate, Detail: c.Note})
			}
			row.Cells = append(row.Cells, cell)
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

type CostRow struct {
	DogID   string  `json:"dog_id"`
	DogName string  `json:"dog_name"`
	Months  [12]int `json:"months"` // enero..diciembre
	Total   int     `json:"total"`
}

type CostReport struct {
	Category dogs.Category `json:"category"`
	Year     int           `json:"year"`
	Rows     []CostRow     `json:"rows"`
	Total    int           `json:"total"`
}

// CostSummary suma el costo de todos los registros médicos del año por mes.
// Sin costo cuenta como 0; fechas inválidas se ignoran.
func CostSummary(all []dogs.Dog, records []medical.Record, category dogs.Category, year int) CostReport {
	rep := CostReport{Category: category, Year: year, Rows: []CostRow{}}
	for _, d := range dogsIn(all, category) {
		row := CostRow{DogID: d.ID, DogName: d.Name}
		for _, r := range records {
			if r.Cost == nil || !belongsTo(d, r.DogID, r.DogName) {
				continue
			}
			t, ok := dates.Parse(r.VisitDate)
			if !ok || t.Year() != year {
				continue
			}
			row.Months[t.Month()-1] += *r.Cost
			row.Total += *r.Cost
		}
		rep.Total += row.Total
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}
