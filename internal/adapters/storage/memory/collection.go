package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// collection es una tabla en memoria que conserva el orden de inserción.
// Implementa el Repository de cada dominio (List/GetByID/Save/Delete).
type collection[T any] struct {
	name     string
	idOf     func(T) string
	notFound error
	changed  func(name string) error

	mu    sync.RWMutex
	order []string
	byID  map[string]T
}

func newCollection[T any](name string, idOf func(T) string, notFound error) *collection[T] {
	return &collection[T]{
		name:     name,
		idOf:     idOf,
		notFound: notFound,
		byID:     make(map[string]T),
	}
}

func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.byID[id]
	if !ok {
		var zero T
		return zero, c.notFound
	}
	return v, nil
}

// Save: upsert por id; un id nuevo va al final del orden.
func (c *collection[T]) Save(ctx context.Context, v T) error {
	id := c.idOf(v)
	if strings.TrimSpace(id) == "" {
		return errIDRequired
	}

	c.mu.Lock()
	if _, exists := c.byID[id]; !exists {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
	c.mu.Unlock()

	return c.notify()
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if _, ok := c.byID[id]; !ok {
		c.mu.Unlock()
		return c.notFound
	}
	delete(c.byID, id)
	for i, x := range c.order {
		if x == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	return c.notify()
}

// notify se llama fuera del lock: el hook puede volver a leer la colección.
// Un error del hook (p.ej. snapshot a disco) se devuelve al caller, pero el
// cambio en memoria ya quedó aplicado.
func (c *collection[T]) notify() error {
	if c.changed == nil {
		return nil
	}
	return c.changed(c.name)
}

func (c *collection[T]) Name() string { return c.name }

// Snapshot serializa la colección como arreglo JSON en orden de inserción.
func (c *collection[T]) Snapshot() ([]byte, error) {
	items, _ := c.List(context.Background())
	return json.Marshal(items)
}

// Restore reemplaza el contenido sin disparar el hook de cambios.
func (c *collection[T]) Restore(payload []byte) error {
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = c.order[:0]
	c.byID = make(map[string]T, len(items))
	for _, v := range items {
		id := c.idOf(v)
		if id == "" {
			continue
		}
		if _, dup := c.byID[id]; !dup {
			c.order = append(c.order, id)
		}
		c.byID[id] = v
	}
	return nil
}
