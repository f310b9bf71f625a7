package monthlyreports

import (
	"context"
	"testing"

	"guidedog-records/internal/ports/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	ids  []string
	byID map[string]Report
}

func (r *memRepo) List(context.Context) ([]Report, error) {
	out := make([]Report, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Report, error) {
	rep, ok := r.byID[id]
	if !ok {
		return Report{}, ErrNotFound
	}
	return rep, nil
}

func (r *memRepo) Save(_ context.Context, rep Report) error {
	if _, ok := r.byID[rep.ID]; !ok {
		r.ids = append(r.ids, rep.ID)
	}
	r.byID[rep.ID] = rep
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type capturePublisher []events.DocumentCreated

func (c *capturePublisher) Publish(_ context.Context, e events.DocumentCreated) error {
	*c = append(*c, e)
	return nil
}

func TestSave_PublishesMonthlyReportFields(t *testing.T) {
	var pub capturePublisher
	svc := NewService(&memRepo{byID: map[string]Report{}}, nil, &pub)
	ctx := context.Background()

	rep, err := svc.Save(ctx, SaveInput{DogName: "Lucky", AuthorName: "Kim", Year: 2024, Month: 3, Summary: "ok"})
	require.NoError(t, err)

	_, err = svc.Save(ctx, SaveInput{ID: rep.ID, DogName: "Lucky", Year: 2024, Month: 3, Summary: "edited"})
	require.NoError(t, err)

	require.Len(t, pub, 1)
	assert.Equal(t, events.CollectionMonthlyReports, pub[0].Collection)
	assert.Equal(t, "2024", pub[0].Fields["year"])
	assert.Equal(t, "3", pub[0].Fields["month"])
	assert.Equal(t, "Kim", pub[0].Fields["author"])
}

func TestSave_RejectsBadPeriod(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Report{}}, nil, nil)
	for _, in := range []SaveInput{
		{DogName: "Lucky", Year: 2024, Month: 13},
		{DogName: "Lucky", Year: 1999, Month: 1},
		{Year: 2024, Month: 1},
	} {
		_, err := svc.Save(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestList_FilterByPeriod(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Report{}}, nil, nil)
	ctx := context.Background()
	for _, m := range []int{1, 2, 2} {
		_, err := svc.Save(ctx, SaveInput{DogName: "Lucky", Year: 2024, Month: m})
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, ListFilter{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
