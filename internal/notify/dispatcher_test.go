package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidedog-records/internal/adapters/queue/memory"
	storage "guidedog-records/internal/adapters/storage/memory"
	"guidedog-records/internal/domain/subscriptions"
	"guidedog-records/internal/ports/events"
	"guidedog-records/internal/ports/push"
)

type fakeSender struct {
	calls   []push.Message
	invalid map[string]bool
	err     error
}

func (f *fakeSender) SendMulticast(_ context.Context, msg push.Message) (push.BatchResult, error) {
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return push.BatchResult{}, f.err
	}
	var res push.BatchResult
	for _, t := range msg.Tokens {
		if f.invalid[t] {
			res.FailureCount++
			res.Results = append(res.Results, push.SendResult{Token: t, ErrorCode: push.ErrCodeInvalidToken})
			continue
		}
		res.SuccessCount++
		res.Results = append(res.Results, push.SendResult{Token: t, Success: true})
	}
	return res, nil
}

type countingRecorder struct {
	dispatched []string
	sent       int
	failed     int
	pruned     int
}

func (c *countingRecorder) EventDispatched(col string) { c.dispatched = append(c.dispatched, col) }
func (c *countingRecorder) PushResult(_ string, sent, failed int) {
	c.sent += sent
	c.failed += failed
}
func (c *countingRecorder) TokensPruned(_ string, n int) { c.pruned += n }

func setup(t *testing.T, subs ...subscriptions.RegisterInput) *subscriptions.Service {
	t.Helper()
	svc := subscriptions.NewService(storage.New().Subscriptions())
	for _, in := range subs {
		_, err := svc.Register(context.Background(), in)
		require.NoError(t, err)
	}
	return svc
}

func TestDispatch_MonthlyReportToAdmins(t *testing.T) {
	subs := setup(t,
		subscriptions.RegisterInput{UserID: "admin1", Role: "admin", Token: "tok-a"},
		subscriptions.RegisterInput{UserID: "admin2", Role: "admin", Token: "tok-b"},
		subscriptions.RegisterInput{UserID: "raiser", Role: "puppy_raiser", Token: "tok-c"},
	)
	sender := &fakeSender{}
	rec := &countingRecorder{}
	d := NewDispatcher(Options{Subscriptions: subs, Sender: sender, BaseURL: "https://app.example/", Metrics: rec})

	d.Dispatch(context.Background(), events.DocumentCreated{
		Collection: events.CollectionMonthlyReports,
		ID:         "r-1",
		Fields:     map[string]string{"author": "Ana", "dog": "Lucky", "year": "2024", "month": "5"},
	})

	require.Len(t, sender.calls, 1)
	msg := sender.calls[0]
	assert.Equal(t, "New monthly report", msg.Notification.Title)
	assert.Equal(t, "Ana submitted the 2024/5 report for Lucky", msg.Notification.Body)
	assert.Equal(t, push.Data{Type: "monthly_reports", ID: "r-1", URL: "https://app.example/monthly-reports/r-1"}, msg.Data)
	assert.ElementsMatch(t, []string{"tok-a", "tok-b"}, msg.Tokens)
	assert.Equal(t, []string{"monthly_reports"}, rec.dispatched)
	assert.Equal(t, 2, rec.sent)
}

func TestDispatch_NoAdminTokens(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(Options{Subscriptions: setup(t), Sender: sender})

	d.Dispatch(context.Background(), events.DocumentCreated{Collection: events.CollectionBoardingForms, ID: "b-1"})
	assert.Empty(t, sender.calls)
}

func TestDispatch_UnknownCollectionIgnored(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(Options{
		Subscriptions: setup(t, subscriptions.RegisterInput{UserID: "a", Role: "admin", Token: "t"}),
		Sender:        sender,
	})

	d.Dispatch(context.Background(), events.DocumentCreated{Collection: "notices", ID: "n-1"})
	assert.Empty(t, sender.calls)
}

func TestDispatch_DiaryPrunesInvalidTokens(t *testing.T) {
	subs := setup(t,
		subscriptions.RegisterInput{UserID: "a1", Role: "admin", Token: "good"},
		subscriptions.RegisterInput{UserID: "a2", Role: "admin", Token: "stale"},
	)
	sender := &fakeSender{invalid: map[string]bool{"stale": true}}
	rec := &countingRecorder{}
	d := NewDispatcher(Options{Subscriptions: subs, Sender: sender, Metrics: rec})

	d.Dispatch(context.Background(), events.DocumentCreated{
		Collection: events.CollectionActivities,
		ID:         "a-1",
		Fields:     map[string]string{"author": "Ana", "dog": "Lucky", "title": "Park walk"},
	})

	require.Len(t, sender.calls, 1)
	assert.Equal(t, "Ana wrote about Lucky: Park walk", sender.calls[0].Notification.Body)
	assert.Equal(t, 1, rec.pruned)

	left, err := subs.ListByRole(context.Background(), "admin")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "good", left[0].Token)
}

func TestDispatch_BoardingDoesNotPrune(t *testing.T) {
	subs := setup(t, subscriptions.RegisterInput{UserID: "a2", Role: "admin", Token: "stale"})
	sender := &fakeSender{invalid: map[string]bool{"stale": true}}
	d := NewDispatcher(Options{Subscriptions: subs, Sender: sender})

	d.Dispatch(context.Background(), events.DocumentCreated{
		Collection: events.CollectionBoardingForms,
		ID:         "b-1",
		Fields:     map[string]string{"requester": "Ana", "dog": "Lucky", "start": "2024-06-01", "end": "2024-06-05"},
	})

	assert.Equal(t, "Ana requested boarding for Lucky (2024-06-01 ~ 2024-06-05)", sender.calls[0].Notification.Body)
	left, _ := subs.ListByRole(context.Background(), "admin")
	assert.Len(t, left, 1)
}

func TestDispatch_SendErrorIsSwallowed(t *testing.T) {
	subs := setup(t, subscriptions.RegisterInput{UserID: "a", Role: "admin", Token: "t"})
	rec := &countingRecorder{}
	d := NewDispatcher(Options{Subscriptions: subs, Sender: &fakeSender{err: errors.New("down")}, Metrics: rec})

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), events.DocumentCreated{Collection: events.CollectionActivities, ID: "a-1"})
	})
	assert.Equal(t, 1, rec.failed)
}

func TestHandle_InvalidPayload(t *testing.T) {
	d := NewDispatcher(Options{Subscriptions: setup(t), Sender: &fakeSender{}})
	assert.NoError(t, d.Handle(context.Background(), []byte("{not json")))
}

func TestDistinctTokens(t *testing.T) {
	got := distinctTokens([]subscriptions.Subscription{
		{Token: "a"}, {Token: " "}, {Token: "b"}, {Token: "a"},
	})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestRender(t *testing.T) {
	assert.Equal(t, "x 1 y", render("x {a} y", map[string]string{"a": "1"}))
	assert.Equal(t, "missing: ", render("missing: {nope}", nil))
	assert.Equal(t, "open { brace", render("open { brace", nil))
}

func TestPublisherThroughQueue(t *testing.T) {
	q := memory.New(memory.Options{})
	defer q.Close()

	sender := &fakeSender{}
	done := make(chan struct{})
	d := NewDispatcher(Options{
		Subscriptions: setup(t, subscriptions.RegisterInput{UserID: "a", Role: "admin", Token: "t"}),
		Sender:        sender,
	})
	require.NoError(t, q.StartConsuming(context.Background(), Topic, func(ctx context.Context, data []byte) error {
		defer close(done)
		return d.Handle(ctx, data)
	}))

	require.NoError(t, NewPublisher(q).Publish(context.Background(), events.DocumentCreated{
		Collection: events.CollectionActivities,
		ID:         "a-9",
		Fields:     map[string]string{"author": "Ana", "dog": "Lucky", "title": "Vet"},
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event not consumed")
	}
	require.Len(t, sender.calls, 1)
	assert.Equal(t, "a-9", sender.calls[0].Data.ID)
}

func TestPublisher_EncodesEvent(t *testing.T) {
	var got []byte
	p := NewPublisher(enqueueFunc(func(_ context.Context, topic string, data []byte) error {
		assert.Equal(t, Topic, topic)
		got = data
		return nil
	}))
	require.NoError(t, p.Publish(context.Background(), events.DocumentCreated{Collection: "activities", ID: "x"}))

	var e events.DocumentCreated
	require.NoError(t, json.Unmarshal(got, &e))
	assert.Equal(t, "x", e.ID)
}

type enqueueFunc func(ctx context.Context, topic string, data []byte) error

func (f enqueueFunc) Publish(ctx context.Context, topic string, data []byte) error {
	return f(ctx, topic, data)
}
