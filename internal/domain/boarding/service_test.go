package boarding

import (
	"context"
	"testing"

	"guidedog-records/internal/ports/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	ids  []string
	byID map[string]Form
}

func (r *memRepo) List(context.Context) ([]Form, error) {
	out := make([]Form, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Form, error) {
	f, ok := r.byID[id]
	if !ok {
		return Form{}, ErrNotFound
	}
	return f, nil
}

func (r *memRepo) Save(_ context.Context, f Form) error {
	if _, ok := r.byID[f.ID]; !ok {
		r.ids = append(r.ids, f.ID)
	}
	r.byID[f.ID] = f
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

func TestSave_NewFormIsPendingAndPublished(t *testing.T) {
	var pub capturePublisher
	svc := NewService(&memRepo{byID: map[string]Form{}}, nil, &pub)
	ctx := context.Background()

	f, err := svc.Save(ctx, SaveInput{DogName: "Lucky", RequesterID: "u1", RequesterName: "Lee", StartDate: "2024-07-01", EndDate: "2024-07-05"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, f.Status)

	require.Len(t, pub, 1)
	assert.Equal(t, events.CollectionBoardingForms, pub[0].Collection)
	assert.Equal(t, map[string]string{"requester": "Lee", "dog": "Lucky", "start": "2024-07-01", "end": "2024-07-05"}, pub[0].Fields)
}

func TestSave_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&memRepo{byID: map[string]Form{}}, nil, nil)
	_, err := svc.Save(context.Background(), SaveInput{DogName: "Lucky", StartDate: "2024-07-05", EndDate: "2024-07-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReview_AndEditKeepsStatus(t *testing.T) {
	var pub capturePublisher
	svc := NewService(&memRepo{byID: map[string]Form{}}, nil, &pub)
	ctx := context.Background()

	f, err := svc.Save(ctx, SaveInput{DogName: "Lucky", StartDate: "2024-07-01", EndDate: "2024-07-05"})
	require.NoError(t, err)

	_, err = svc.Review(ctx, f.ID, StatusPending, "admin", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	reviewed, err := svc.Review(ctx, f.ID, StatusApproved, "admin", "ok")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, reviewed.Status)
	assert.Equal(t, "admin", reviewed.ReviewerID)

	_, err = svc.Review(ctx, f.ID, StatusApproved, "admin", "")
	assert.ErrorIs(t, err, ErrBadState)

	edited, err := svc.Save(ctx, SaveInput{ID: f.ID, DogName: "Lucky", StartDate: "2024-07-02", EndDate: "2024-07-05"})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, edited.Status)
	assert.Len(t, pub, 1)

	_, err = svc.Review(ctx, "missing", StatusRejected, "admin", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
