package notices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	ids  []string
	byID map[string]Notice
}

func (r *memRepo) List(context.Context) ([]Notice, error) {
	out := make([]Notice, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Notice, error) {
	n, ok := r.byID[id]
	if !ok {
		return Notice{}, ErrNotFound
	}
	return n, nil
}

func (r *memRepo) Save(_ context.Context, n Notice) error {
	if _, ok := r.byID[n.ID]; !ok {
		r.ids = append(r.ids, n.ID)
	}
	r.byID[n.ID] = n
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func TestSave_Audience(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Notice{}})
	ctx := context.Background()

	n, err := svc.Save(ctx, SaveInput{Title: "Vet day"})
	require.NoError(t, err)
	assert.Equal(t, []string{AudienceAll}, n.Audience)

	n, err = svc.Save(ctx, SaveInput{Title: "Raisers", Audience: []string{"puppy_raiser", " Puppy_Raiser", "trainer"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"puppy_raiser", "trainer"}, n.Audience)

	n, err = svc.Save(ctx, SaveInput{Title: "All", Audience: []string{"trainer", "all"}})
	require.NoError(t, err)
	assert.Equal(t, []string{AudienceAll}, n.Audience)

	_, err = svc.Save(ctx, SaveInput{Title: "Bad", Audience: []string{"owner"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListFor_FiltersAndOrders(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Notice{}})
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	save := func(id string, offset time.Duration, pinned bool, audience ...string) {
		svc.now = func() time.Time { return t0.Add(offset) }
		_, err := svc.Save(ctx, SaveInput{ID: id, Title: id, Audience: audience, Pinned: pinned})
		require.NoError(t, err)
	}
	save("old-all", 0, false)
	save("pinned-trainers", time.Hour, true, "trainer")
	save("new-all", 2*time.Hour, false)
	save("vets", 3*time.Hour, false, "veterinarian")

	got, err := svc.ListFor(ctx, "trainer")
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, n := range got {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"pinned-trainers", "new-all", "old-all"}, ids)

	got, err = svc.ListFor(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}
