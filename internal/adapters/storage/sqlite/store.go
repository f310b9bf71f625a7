// Package sqlite persiste el store en memoria como snapshots JSON por colección.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"guidedog-records/internal/adapters/storage/memory"
)

const keyPrefix = "guidedog_"

// Key devuelve la key de la fila de snapshot de una colección.
// medical_records conserva la key histórica guidedog_medical.
func Key(collection string) string {
	if collection == memory.CollectionMedicalRecords {
		return keyPrefix + "medical"
	}
	return keyPrefix + collection
}

// Store embebe el store en memoria; cada Save/Delete reescribe el snapshot de
// la colección tocada en la tabla state.
type Store struct {
	*memory.Store

	db     *sql.DB
	byName map[string]memory.Snapshotter

	// serializa snapshot+write para que un snapshot viejo no pise uno nuevo
	mu sync.Mutex
}

func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: mkdir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// un solo writer; también evita que :memory: abra bases distintas por conexión
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create table: %w", err)
	}

	s := &Store{
		Store:  memory.New(),
		db:     db,
		byName: make(map[string]memory.Snapshotter),
	}
	for _, c := range s.Store.Collections() {
		s.byName[c.Name()] = c
	}

	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.Store.OnChange(s.persist)
	return s, nil
}

func (s *Store) load() error {
	for name, c := range s.byName {
		var payload []byte
		err := s.db.QueryRow(`SELECT payload FROM state WHERE key = ?`, Key(name)).Scan(&payload)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("sqlite: load %s: %w", name, err)
		}
		if err := c.Restore(payload); err != nil {
			return fmt.Errorf("sqlite: restore %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) persist(collection string) error {
	c, ok := s.byName[collection]
	if !ok {
		return fmt.Errorf("sqlite: unknown collection %q", collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("sqlite: snapshot %s: %w", collection, err)
	}

	if _, err := s.db.Exec(
		`INSERT INTO state (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		Key(collection), payload,
	); err != nil {
		return fmt.Errorf("sqlite: persist %s: %w", collection, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
