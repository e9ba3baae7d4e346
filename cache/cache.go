// Package cache persists a fetched compendium snapshot in a local DuckDB
// database so lookups and searches can run without hitting the API.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/purah/compendium/hyrule"
)

// ErrEmpty is returned when no snapshot has been saved yet.
var ErrEmpty = errors.New("cache is empty")

// Store wraps the snapshot database.
type Store struct {
	db *sql.DB
}

// Open opens the snapshot database at path, creating it (and any parent
// directories) if necessary.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER NOT NULL,
			name VARCHAR NOT NULL,
			category VARCHAR NOT NULL,
			food BOOLEAN NOT NULL DEFAULT FALSE,
			master_mode BOOLEAN NOT NULL DEFAULT FALSE,
			payload VARCHAR NOT NULL,
			PRIMARY KEY (id, master_mode)
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			fetched_at TIMESTAMP NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot with the given entries.
func (s *Store) SaveSnapshot(all *hyrule.AllEntries, master []hyrule.MonsterEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshot metadata: %w", err)
	}

	insert := func(core hyrule.EntryCore, category hyrule.Category, food, masterMode bool, entry any) error {
		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry %q: %w", core.Name, err)
		}
		_, err = tx.Exec(
			`INSERT INTO entries (id, name, category, food, master_mode, payload) VALUES (?, ?, ?, ?, ?, ?)`,
			core.ID, core.Name, category.String(), food, masterMode, string(payload),
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", core.Name, err)
		}
		return nil
	}

	for i := range all.Creatures.Food {
		e := all.Creatures.Food[i]
		if err := insert(e.EntryCore, hyrule.CategoryCreatures, true, false, e); err != nil {
			return err
		}
	}
	for i := range all.Creatures.NonFood {
		e := all.Creatures.NonFood[i]
		if err := insert(e.EntryCore, hyrule.CategoryCreatures, false, false, e); err != nil {
			return err
		}
	}
	for i := range all.Equipment {
		e := all.Equipment[i]
		if err := insert(e.EntryCore, hyrule.CategoryEquipment, false, false, e); err != nil {
			return err
		}
	}
	for i := range all.Materials {
		e := all.Materials[i]
		if err := insert(e.EntryCore, hyrule.CategoryMaterials, false, false, e); err != nil {
			return err
		}
	}
	for i := range all.Monsters {
		e := all.Monsters[i]
		if err := insert(e.EntryCore, hyrule.CategoryMonsters, false, false, e); err != nil {
			return err
		}
	}
	for i := range all.Treasure {
		e := all.Treasure[i]
		if err := insert(e.EntryCore, hyrule.CategoryTreasure, false, false, e); err != nil {
			return err
		}
	}
	for i := range master {
		e := master[i]
		if err := insert(e.EntryCore, hyrule.CategoryMonsters, false, true, e); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`INSERT INTO snapshots (id, fetched_at) VALUES (1, ?)`, time.Now()); err != nil {
		return fmt.Errorf("failed to record snapshot time: %w", err)
	}

	return tx.Commit()
}

// LoadSnapshot reconstructs the stored snapshot. It returns ErrEmpty when
// nothing has been saved.
func (s *Store) LoadSnapshot() (*hyrule.AllEntries, []hyrule.MonsterEntry, error) {
	if _, err := s.FetchedAt(); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(`SELECT category, food, master_mode, payload FROM entries ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	all := &hyrule.AllEntries{}
	var master []hyrule.MonsterEntry

	for rows.Next() {
		var (
			category   string
			food       bool
			masterMode bool
			payload    string
		)
		if err := rows.Scan(&category, &food, &masterMode, &payload); err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		switch hyrule.Category(category) {
		case hyrule.CategoryCreatures:
			var e hyrule.CreatureEntry
			if err := json.Unmarshal([]byte(payload), &e); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal creature: %w", err)
			}
			if food {
				all.Creatures.Food = append(all.Creatures.Food, e)
			} else {
				all.Creatures.NonFood = append(all.Creatures.NonFood, e)
			}
		case hyrule.CategoryMonsters:
			var e hyrule.MonsterEntry
			if err := json.Unmarshal([]byte(payload), &e); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal monster: %w", err)
			}
			if masterMode {
				master = append(master, e)
			} else {
				all.Monsters = append(all.Monsters, e)
			}
		case hyrule.CategoryMaterials:
			var e hyrule.MaterialEntry
			if err := json.Unmarshal([]byte(payload), &e); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal material: %w", err)
			}
			all.Materials = append(all.Materials, e)
		case hyrule.CategoryEquipment:
			var e hyrule.EquipmentEntry
			if err := json.Unmarshal([]byte(payload), &e); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal equipment: %w", err)
			}
			all.Equipment = append(all.Equipment, e)
		case hyrule.CategoryTreasure:
			var e hyrule.TreasureEntry
			if err := json.Unmarshal([]byte(payload), &e); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal treasure: %w", err)
			}
			all.Treasure = append(all.Treasure, e)
		default:
			return nil, nil, fmt.Errorf("%w: %q", hyrule.ErrUnknownCategory, category)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return all, master, nil
}

// FetchedAt returns when the stored snapshot was fetched.
func (s *Store) FetchedAt() (time.Time, error) {
	var fetchedAt time.Time
	err := s.db.QueryRow(`SELECT fetched_at FROM snapshots WHERE id = 1`).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrEmpty
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot time: %w", err)
	}
	return fetchedAt, nil
}

// Stale reports whether the snapshot is missing or older than maxAge.
// A zero maxAge means snapshots never go stale.
func (s *Store) Stale(maxAge time.Duration) bool {
	fetchedAt, err := s.FetchedAt()
	if err != nil {
		return true
	}
	if maxAge <= 0 {
		return false
	}
	return time.Since(fetchedAt) > maxAge
}

// Clear removes the stored snapshot.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to clear snapshot metadata: %w", err)
	}
	return nil
}
