package reports

import (
	"context"
	"errors"
	"testing"

	"guidedog-records/internal/domain/dogs"
	"guidedog-records/internal/domain/medical"
	"guidedog-records/internal/domain/medication"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

var fixtureDogs = []dogs.Dog{
	{ID: "d1", Name: "Lucky", Category: dogs.CategoryGuideDog},
	{ID: "d2", Name: "Bori", Category: dogs.CategoryPuppy},
	{ID: "d3", Name: "Dubu", Category: dogs.CategoryGuideDog},
	{ID: "d4", Name: "Hodu", Category: dogs.CategoryGuideDog},
	{ID: "d5", Name: "Gold", Category: dogs.CategoryRetired},
}

func rowIDs(m Matrix) []string {
	out := make([]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		out = append(out, r.DogID)
	}
	return out
}

func TestMedicationMatrix_NoChecksGivesEmptyCells(t *testing.T) {
	m := MedicationMatrix(fixtureDogs, nil, dogs.CategoryGuideDog, 2024, 5)

	require.Len(t, m.Rows, 3)
	assert.Equal(t, []string{"d1", "d3", "d4"}, rowIDs(m))
	assert.Equal(t, []string{"heartworm", "external_parasite", "internal_parasite"}, m.Columns)
	for _, row := range m.Rows {
		require.Len(t, row.Cells, 3)
		for _, c := range row.Cells {
			assert.NotNil(t, c.Entries)
			assert.Empty(t, c.Entries)
		}
	}
}

func TestMedicationMatrix_CellsMatchTypeDogAndMonth(t *testing.T) {
	checks := []medication.Check{
		{ID: "c1", DogID: "d1", Type: medication.TypeHeartworm, CheckDate: "2024-05-03", Note: "tablet"},
		{ID: "c2", DogID: "d1", Type: medication.TypeHeartworm, CheckDate: "2024-06-03"},
		{ID: "c3", DogID: "d3", Type: medication.TypeInternalParasite, CheckDate: "2024-05-20"},
		{ID: "c4", DogID: "d2", Type: medication.TypeHeartworm, CheckDate: "2024-05-03"},
		{ID: "c5", DogName: "Hodu", Type: medication.TypeExternalParasite, CheckDate: "2024-05-11"},
		{ID: "c6", DogID: "d1", Type: medication.TypeExternalParasite, CheckDate: "2024-5-3"},
	}

	m := MedicationMatrix(fixtureDogs, checks, dogs.CategoryGuideDog, 2024, 5)
	require.Len(t, m.Rows, 3)

	lucky := m.Rows[0]
	assert.Equal(t, []Entry{{RecordID: "c1", Date: "2024-05-03", Detail: "tablet"}}, lucky.Cells[0].Entries)
	assert.Empty(t, lucky.Cells[1].Entries, "malformed date never matches")
	assert.Empty(t, lucky.Cells[2].Entries)

	dubu := m.Rows[1]
	assert.Len(t, dubu.Cells[2].Entries, 1)

	hodu := m.Rows[2]
	require.Len(t, hodu.Cells[1].Entries, 1, "legacy record matched by name")
	assert.Equal(t, "c5", hodu.Cells[1].Entries[0].RecordID)
}

func TestVaccineMatrix(t *testing.T) {
	records := []medical.Record{
		{ID: "r1", DogID: "d1", Category: medical.CategoryVaccination, VisitDate: "2024-03-01", Hospital: "Seoul Vet", Vaccines: []medical.VaccineType{medical.VaccineRabies, medical.VaccineDHPP}},
		{ID: "r2", DogID: "d1", Category: medical.CategoryGeneral, VisitDate: "2024-03-05", Hospital: "Seoul Vet"},
		{ID: "r3", DogID: "d1", Category: medical.CategoryVaccination, VisitDate: "2023-12-31", Vaccines: []medical.VaccineType{medical.VaccineRabies}},
		{ID: "r4", DogID: "d2", Category: medical.CategoryVaccination, VisitDate: "2024-04-01", Vaccines: []medical.VaccineType{medical.VaccineRabies}},
		{ID: "r5", DogID: "d3", Category: medical.CategoryVaccination, VisitDate: "not-a-date", Vaccines: []medical.VaccineType{medical.VaccineRabies}},
	}

	m := VaccineMatrix(fixtureDogs, records, dogs.CategoryGuideDog, 2024)
	assert.Equal(t, []string{"rabies", "dhpp", "leptospirosis", "bordetella", "coronavirus"}, m.Columns)
	require.Equal(t, []string{"d1", "d3", "d4"}, rowIDs(m))

	lucky := m.Rows[0]
	assert.Equal(t, []Entry{{RecordID: "r1", Date: "2024-03-01", Detail: "Seoul Vet"}}, lucky.Cells[0].Entries)
	assert.Equal(t, []Entry{{RecordID: "r1", Date: "2024-03-01", Detail: "Seoul Vet"}}, lucky.Cells[1].Entries)
	assert.Empty(t, lucky.Cells[2].Entries)

	for _, c := range m.Rows[1].Cells {
		assert.Empty(t, c.Entries)
	}
}

func TestMatrix_EveryRowBelongsToCategory(t *testing.T) {
	byID := map[string]dogs.Dog{}
	for _, d := range fixtureDogs {
		byID[d.ID] = d
	}
	for _, cat := range dogs.Categories {
		m := VaccineMatrix(fixtureDogs, nil, cat, 2024)
		for _, row := range m.Rows {
			assert.Equal(t, cat, byID[row.DogID].Category)
		}
	}
}

func TestMatrix_UnknownCategoryHasNoRows(t *testing.T) {
	m := VaccineMatrix(fixtureDogs, nil, "partner", 2024)
	assert.NotNil(t, m.Rows)
	assert.Empty(t, m.Rows)

	mm := MedicationMatrix(fixtureDogs, nil, "", 2024, 1)
	assert.Empty(t, mm.Rows)
}

func TestCostSummary(t *testing.T) {
	records := []medical.Record{
		{ID: "r1", DogID: "d1", VisitDate: "2024-01-10", Cost: intPtr(30000)},
		{ID: "r2", DogID: "d1", VisitDate: "2024-01-20", Cost: intPtr(5000)},
		{ID: "r3", DogID: "d1", VisitDate: "2024-12-01", Cost: intPtr(1000)},
		{ID: "r4", DogID: "d1", VisitDate: "2023-12-01", Cost: intPtr(99)},
		{ID: "r5", DogID: "d3", VisitDate: "2024-02-01"},
		{ID: "r6", DogID: "d3", VisitDate: "bad", Cost: intPtr(7)},
	}

	rep := CostSummary(fixtureDogs, records, dogs.CategoryGuideDog, 2024)
	require.Len(t, rep.Rows, 3)

	lucky := rep.Rows[0]
	assert.Equal(t, 35000, lucky.Months[0])
	assert.Equal(t, 1000, lucky.Months[11])
	assert.Equal(t, 36000, lucky.Total)
	assert.Equal(t, 0, rep.Rows[1].Total)
	assert.Equal(t, 36000, rep.Total)
}

type stubDogs struct {
	items []dogs.Dog
	err   error
}

func (s stubDogs) List(context.Context, dogs.Category) ([]dogs.Dog, error) { return s.items, s.err }

type stubMedical []medical.Record

func (s stubMedical) All(context.Context) ([]medical.Record, error) { return s, nil }

type stubChecks []medication.Check

func (s stubChecks) All(context.Context) ([]medication.Check, error) { return s, nil }

func TestService_PropagatesStorageErrors(t *testing.T) {
	svc := NewService(stubDogs{err: errors.New("db down")}, stubMedical{}, stubChecks{})

	_, err := svc.Vaccines(context.Background(), dogs.CategoryGuideDog, 2024)
	assert.Error(t, err)
	_, err = svc.Medications(context.Background(), dogs.CategoryGuideDog, 2024, 1)
	assert.Error(t, err)
}

func TestService_Medications(t *testing.T) {
	svc := NewService(stubDogs{items: fixtureDogs}, stubMedical{}, stubChecks{
		{ID: "c1", DogID: "d4", Type: medication.TypeHeartworm, CheckDate: "2024-02-01"},
	})

	m, err := svc.Medications(context.Background(), dogs.CategoryGuideDog, 2024, 2)
	require.NoError(t, err)
	assert.Len(t, m.Rows[2].Cells[0].Entries, 1)
}
