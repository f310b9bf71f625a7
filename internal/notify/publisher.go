// Package notify lleva los eventos DocumentCreated desde los servicios hasta el proveedor de push.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"guidedog-records/internal/ports/events"
)

// Topic de la cola donde viajan los DocumentCreated.
const Topic = "document_created"

// Enqueuer es la parte de la cola que usa el Publisher.
type Enqueuer interface {
	Publish(ctx context.Context, topic string, data []byte) error
}

// Publisher implementa events.Publisher encolando el evento como JSON.
type Publisher struct {
	queue Enqueuer
}

func NewPublisher(q Enqueuer) *Publisher {
	return &Publisher{queue: q}
}

func (p *Publisher) Publish(ctx context.Context, e events.DocumentCreated) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}
	if err := p.queue.Publish(ctx, Topic, b); err != nil {
		return fmt.Errorf("notify: enqueue %s/%s: %w", e.Collection, e.ID, err)
	}
	return nil
}
