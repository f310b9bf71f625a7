package medication

import (
	"context"
	"testing"

	"guidedog-records/internal/domain/dogs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	ids  []string
	byID map[string]Check
}

func (r *memRepo) List(context.Context) ([]Check, error) {
	out := make([]Check, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Check, error) {
	c, ok := r.byID[id]
	if !ok {
		return Check{}, ErrNotFound
	}
	return c, nil
}

func (r *memRepo) Save(_ context.Context, c Check) error {
	if _, ok := r.byID[c.ID]; !ok {
		r.ids = append(r.ids, c.ID)
	}
	r.byID[c.ID] = c
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type namer map[string]string

func (n namer) NameOf(_ context.Context, id string) (string, error) {
	if v, ok := n[id]; ok {
		return v, nil
	}
	return "", dogs.ErrNotFound
}

func TestSave_Validation(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Check{}}, namer{"d1": "Lucky"})
	ctx := context.Background()

	_, err := svc.Save(ctx, SaveInput{DogID: "d1", Type: "vitamins", CheckDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(ctx, SaveInput{DogID: "d1", Type: TypeHeartworm})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(ctx, SaveInput{Type: TypeHeartworm, CheckDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrInvalidInput, "no dog")

	c, err := svc.Save(ctx, SaveInput{DogID: "d1", Type: TypeHeartworm, CheckDate: "2024-01-01", ReporterID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "Lucky", c.DogName)

	// update sin reporter conserva el original
	c2, err := svc.Save(ctx, SaveInput{ID: c.ID, DogID: "d1", Type: TypeHeartworm, CheckDate: "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, "u1", c2.ReporterID)
	assert.Equal(t, c.CreatedAt, c2.CreatedAt)
}

func TestList_YearMonthFilter(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Check{}}, namer{"d1": "Lucky"})
	ctx := context.Background()

	for _, day := range []string{"2024-01-15", "2024-02-15", "2023-01-15"} {
		_, err := svc.Save(ctx, SaveInput{DogID: "d1", Type: TypeInternalParasite, CheckDate: day})
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, ListFilter{Year: 2024})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(ctx, ListFilter{Year: 2024, Month: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02-15", got[0].CheckDate)

	got, err = svc.List(ctx, ListFilter{Type: TypeHeartworm})
	require.NoError(t, err)
	assert.Empty(t, got)
}
