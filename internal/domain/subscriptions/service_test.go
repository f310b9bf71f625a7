package subscriptions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	ids  []string
	byID map[string]Subscription
}

func newMemRepo() *memRepo { return &memRepo{byID: map[string]Subscription{}} }

func (r *memRepo) List(context.Context) ([]Subscription, error) {
	out := make([]Subscription, 0, len(r.ids))
	for _, id := range r.ids {
		if s, ok := r.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Subscription, error) {
	s, ok := r.byID[id]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return s, nil
}

func (r *memRepo) Save(_ context.Context, s Subscription) error {
	if _, ok := r.byID[s.ID]; !ok {
		r.ids = append(r.ids, s.ID)
	}
	r.byID[s.ID] = s
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestRegister_UpsertByToken(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{UserID: "u1", Role: "trainer", Token: "tok-1"})
	require.NoError(t, err)
	assert.Equal(t, "web", a.Platform)

	b, err := svc.Register(ctx, RegisterInput{UserID: "admin", Role: "admin", Token: "tok-1", Platform: "Android"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "admin", b.UserID)
	assert.Equal(t, "android", b.Platform)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.Register(ctx, RegisterInput{UserID: "u1", Token: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByRole_DeleteByTokenAndPrune(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	for _, in := range []RegisterInput{
		{UserID: "a1", Role: "admin", Token: "t1"},
		{UserID: "a2", Role: "admin", Token: "t2"},
		{UserID: "u1", Role: "trainer", Token: "t3"},
	} {
		_, err := svc.Register(ctx, in)
		require.NoError(t, err)
	}

	admins, err := svc.ListByRole(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	assert.ErrorIs(t, svc.DeleteByToken(ctx, "t3", "someone-else"), ErrNotFound)
	require.NoError(t, svc.DeleteByToken(ctx, "t3", "u1"))

	n, err := svc.DeleteTokens(ctx, []string{"t1", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	admins, err = svc.ListByRole(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "t2", admins[0].Token)
}
