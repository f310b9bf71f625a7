package notify

import (
	"context"
	"encoding/json"
	"strings"

	"guidedog-records/internal/domain/subscriptions"
	"guidedog-records/internal/domain/users"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/ports/events"
	"guidedog-records/internal/ports/push"
)

// SubscriptionStore es lo que el dispatcher necesita de subscriptions.Service.
type SubscriptionStore interface {
	ListByRole(ctx context.Context, role string) ([]subscriptions.Subscription, error)
	DeleteTokens(ctx context.Context, tokens []string) (int, error)
}

// Recorder lo implementa *metrics.Metrics.
type Recorder interface {
	EventDispatched(collection string)
	PushResult(trigger string, sent, failed int)
	TokensPruned(trigger string, n int)
}

type nopRecorder struct{}

func (nopRecorder) EventDispatched(string)      {}
func (nopRecorder) PushResult(string, int, int) {}
func (nopRecorder) TokensPruned(string, int)    {}

type Options struct {
	Subscriptions SubscriptionStore
	Sender        push.Sender
	// BaseURL público de la app; Data.URL = BaseURL/path/id.
	BaseURL  string
	Triggers []Trigger
	Metrics  Recorder
	Log      logger.Logger
}

// Dispatcher consume DocumentCreated y ejecuta el trigger de la colección.
// Los errores se loguean y nunca se propagan (at-most-once).
type Dispatcher struct {
	subs     SubscriptionStore
	sender   push.Sender
	baseURL  string
	triggers map[string]Trigger
	metrics  Recorder
	log      logger.Logger
}

func NewDispatcher(opts Options) *Dispatcher {
	triggers := opts.Triggers
	if triggers == nil {
		triggers = DefaultTriggers
	}
	byCollection := make(map[string]Trigger, len(triggers))
	for _, t := range triggers {
		byCollection[t.Collection] = t
	}

	rec := opts.Metrics
	if rec == nil {
		rec = nopRecorder{}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Dispatcher{
		subs:     opts.Subscriptions,
		sender:   opts.Sender,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		triggers: byCollection,
		metrics:  rec,
		log:      log,
	}
}

// Handle es el handler de la cola.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) error {
	var e events.DocumentCreated
	if err := json.Unmarshal(data, &e); err != nil {
		d.log.Error("notify: invalid event payload", logger.Fields{"err": err})
		return nil
	}
	d.Dispatch(ctx, e)
	return nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, e events.DocumentCreated) {
	t, ok := d.triggers[e.Collection]
	if !ok {
		return
	}
	d.metrics.EventDispatched(e.Collection)

	log := d.log.With(logger.Fields{"collection": e.Collection, "id": e.ID})

	subs, err := d.subs.ListByRole(ctx, string(users.RoleAdmin))
	if err != nil {
		log.Error("notify: list admin subscriptions failed", logger.Fields{"err": err})
		return
	}

	tokens := distinctTokens(subs)
	if len(tokens) == 0 {
		log.Info("notify: no admin tokens", nil)
		return
	}

	msg := push.Message{
		Notification: push.Notification{
			Title: t.Title,
			Body:  render(t.Body, e.Fields),
		},
		Data: push.Data{
			Type: e.Collection,
			ID:   e.ID,
			URL:  d.baseURL + "/" + t.Path + "/" + e.ID,
		},
		Tokens: tokens,
	}

	res, err := d.sender.SendMulticast(ctx, msg)
	if err != nil {
		d.metrics.PushResult(e.Collection, 0, len(tokens))
		log.Error("notify: send failed", logger.Fields{"err": err, "tokens": len(tokens)})
		return
	}
	d.metrics.PushResult(e.Collection, res.SuccessCount, res.FailureCount)
	log.Info("notify: sent", logger.Fields{"success": res.SuccessCount, "failure": res.FailureCount})

	if !t.PruneInvalid || res.FailureCount == 0 {
		return
	}

	var invalid []string
	for _, r := range res.Results {
		if r.InvalidToken() {
			invalid = append(invalid, r.Token)
		}
	}
	if len(invalid) == 0 {
		return
	}

	n, err := d.subs.DeleteTokens(ctx, invalid)
	d.metrics.TokensPruned(e.Collection, n)
	if err != nil {
		log.Error("notify: prune invalid tokens failed", logger.Fields{"err": err, "pruned": n})
		return
	}
	log.Info("notify: pruned invalid tokens", logger.Fields{"pruned": n})
}

func distinctTokens(subs []subscriptions.Subscription) []string {
	seen := make(map[string]struct{}, len(subs))
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		t := strings.TrimSpace(s.Token)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
