// Package memory es una cola en proceso (canales con buffer) con un consumidor por tópico.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"guidedog-records/internal/platform/logger"
)

const (
	DefaultBuffer         = 100
	DefaultPublishTimeout = 2 * time.Second
)

var (
	ErrClosed         = errors.New("queue: closed")
	ErrPublishTimeout = errors.New("queue: publish timeout")
	ErrConsuming      = errors.New("queue: topic already has a consumer")
)

// Handler procesa un mensaje; un error se loguea y el mensaje se descarta.
type Handler func(ctx context.Context, data []byte) error

type Options struct {
	Buffer         int
	PublishTimeout time.Duration
	Log            logger.Logger
}

type Queue struct {
	mu        sync.Mutex
	topics    map[string]chan []byte
	consuming map[string]bool
	closed    bool

	buffer  int
	timeout time.Duration
	log     logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(opts Options) *Queue {
	buf := opts.Buffer
	if buf <= 0 {
		buf = DefaultBuffer
	}
	timeout := opts.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		topics:    make(map[string]chan []byte),
		consuming: make(map[string]bool),
		buffer:    buf,
		timeout:   timeout,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (q *Queue) topic(name string) (chan []byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrClosed
	}
	ch, ok := q.topics[name]
	if !ok {
		ch = make(chan []byte, q.buffer)
		q.topics[name] = ch
	}
	return ch, nil
}

// Publish bloquea hasta que haya lugar en el buffer, ctx se cancele o venza el timeout.
func (q *Queue) Publish(ctx context.Context, topic string, data []byte) error {
	ch, err := q.topic(topic)
	if err != nil {
		return err
	}

	timer := time.NewTimer(q.timeout)
	defer timer.Stop()

	select {
	case ch <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.ctx.Done():
		return ErrClosed
	case <-timer.C:
		return fmt.Errorf("%w: %s", ErrPublishTimeout, topic)
	}
}

// StartConsuming lanza un único consumidor para el tópico. Corre hasta Close o ctx.Done.
func (q *Queue) StartConsuming(ctx context.Context, topic string, h Handler) error {
	ch, err := q.topic(topic)
	if err != nil {
		return err
	}

	q.mu.Lock()
	if q.consuming[topic] {
		q.mu.Unlock()
		return ErrConsuming
	}
	q.consuming[topic] = true
	q.mu.Unlock()

	log := q.log.With(logger.Fields{"topic": topic})

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case data := <-ch:
				if err := h(q.ctx, data); err != nil {
					log.Warn("queue handler failed", logger.Fields{"err": err})
				}
			case <-ctx.Done():
				return
			case <-q.ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Close corta los consumidores y espera a que terminen. Lo que quedó en buffer se pierde.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
}

// Pending devuelve los mensajes en buffer del tópico.
func (q *Queue) Pending(topic string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.topics[topic])
}
