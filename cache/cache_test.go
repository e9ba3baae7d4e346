package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/purah/compendium/hyrule"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "compendium.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleSnapshot() (*hyrule.AllEntries, []hyrule.MonsterEntry) {
	all := &hyrule.AllEntries{
		Creatures: hyrule.CreatureEntries{
			Food: []hyrule.CreatureEntry{
				{
					EntryCore:       hyrule.EntryCore{ID: 42, Name: "hyrule bass", Description: "A common bass."},
					HeartsRecovered: 1,
				},
			},
			NonFood: []hyrule.CreatureEntry{
				{
					EntryCore:     hyrule.EntryCore{ID: 67, Name: "winterwing butterfly", CommonLocations: []string{"Hyrule Ridge"}},
					CookingEffect: "heat resistance",
				},
			},
		},
		Equipment: []hyrule.EquipmentEntry{
			{EntryCore: hyrule.EntryCore{ID: 201, Name: "master sword"}, Attack: 30},
		},
		Materials: []hyrule.MaterialEntry{
			{EntryCore: hyrule.EntryCore{ID: 30, Name: "hearty truffle"}, HeartsRecovered: 2},
		},
		Monsters: []hyrule.MonsterEntry{
			{EntryCore: hyrule.EntryCore{ID: 112, Name: "silver moblin"}, Drops: []string{"moblin horn"}},
		},
		Treasure: []hyrule.TreasureEntry{
			{EntryCore: hyrule.EntryCore{ID: 404, Name: "ore deposit"}, Drops: []string{"ruby"}},
		},
	}
	master := []hyrule.MonsterEntry{
		{EntryCore: hyrule.EntryCore{ID: 160, Name: "golden lynel"}, Drops: []string{"lynel horn"}},
	}
	return all, master
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := setupTestStore(t)

	all, master := sampleSnapshot()
	if err := store.SaveSnapshot(all, master); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, loadedMaster, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	if loaded.Count() != all.Count() {
		t.Errorf("Expected %d entries, got %d", all.Count(), loaded.Count())
	}
	if len(loaded.Creatures.Food) != 1 || loaded.Creatures.Food[0].Name != "hyrule bass" {
		t.Errorf("Food creatures not preserved: %+v", loaded.Creatures.Food)
	}
	if len(loaded.Creatures.NonFood) != 1 || loaded.Creatures.NonFood[0].CookingEffect != "heat resistance" {
		t.Errorf("Non-food creatures not preserved: %+v", loaded.Creatures.NonFood)
	}
	if len(loaded.Equipment) != 1 || loaded.Equipment[0].Attack != 30 {
		t.Errorf("Equipment not preserved: %+v", loaded.Equipment)
	}
	if len(loaded.Monsters) != 1 || len(loaded.Monsters[0].Drops) != 1 {
		t.Errorf("Monsters not preserved: %+v", loaded.Monsters)
	}

	if len(loadedMaster) != 1 {
		t.Fatalf("Expected 1 master mode monster, got %d", len(loadedMaster))
	}
	if loadedMaster[0].Name != "golden lynel" {
		t.Errorf("Expected golden lynel, got %s", loadedMaster[0].Name)
	}
}

func TestSaveSnapshotReplaces(t *testing.T) {
	store := setupTestStore(t)

	all, master := sampleSnapshot()
	if err := store.SaveSnapshot(all, master); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	// Second save replaces the first, not appends.
	smaller := &hyrule.AllEntries{
		Monsters: []hyrule.MonsterEntry{
			{EntryCore: hyrule.EntryCore{ID: 112, Name: "silver moblin"}},
		},
	}
	if err := store.SaveSnapshot(smaller, nil); err != nil {
		t.Fatalf("Failed to save second snapshot: %v", err)
	}

	loaded, loadedMaster, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded.Count() != 1 {
		t.Errorf("Expected 1 entry after replace, got %d", loaded.Count())
	}
	if len(loadedMaster) != 0 {
		t.Errorf("Expected no master mode monsters, got %d", len(loadedMaster))
	}
}

func TestEmptyStore(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.FetchedAt(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
	if _, _, err := store.LoadSnapshot(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
	if !store.Stale(time.Hour) {
		t.Error("Empty store should be stale")
	}
}

func TestStale(t *testing.T) {
	store := setupTestStore(t)

	all, _ := sampleSnapshot()
	if err := store.SaveSnapshot(all, nil); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	if store.Stale(time.Hour) {
		t.Error("Fresh snapshot should not be stale")
	}
	if !store.Stale(time.Nanosecond) {
		t.Error("Snapshot should be stale with a tiny max age")
	}
	if store.Stale(0) {
		t.Error("Zero max age means snapshots never go stale")
	}
}

func TestClear(t *testing.T) {
	store := setupTestStore(t)

	all, master := sampleSnapshot()
	if err := store.SaveSnapshot(all, master); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Failed to clear store: %v", err)
	}

	if _, _, err := store.LoadSnapshot(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty after clear, got %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "compendium.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store with nested path: %v", err)
	}
	defer store.Close()
}
