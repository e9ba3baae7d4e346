package hyrule

import (
	"fmt"
	"strconv"
	"strings"
)

// Category identifies one of the compendium's resource collections. Its
// string value doubles as the category path segment and as the value of the
// "category" tag on entry payloads.
type Category string

const (
	// CategoryCreatures covers animals and other living things
	CategoryCreatures Category = "creatures"
	// CategoryMonsters covers hostile enemies
	CategoryMonsters Category = "monsters"
	// CategoryMaterials covers cooking and crafting ingredients
	CategoryMaterials Category = "materials"
	// CategoryEquipment covers weapons, bows, shields and armor
	CategoryEquipment Category = "equipment"
	// CategoryTreasure covers ore deposits, chests and the like
	CategoryTreasure Category = "treasure"
)

// Categories returns every valid compendium category.
func Categories() []Category {
	return []Category{
		CategoryCreatures,
		CategoryMonsters,
		CategoryMaterials,
		CategoryEquipment,
		CategoryTreasure,
	}
}

// ParseCategory converts a user-supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryCreatures, CategoryMonsters, CategoryMaterials, CategoryEquipment, CategoryTreasure:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// String returns the category's path segment.
func (c Category) String() string {
	return string(c)
}

// Mode selects between the two game modes the compendium tracks.
type Mode int

const (
	// ModeStandard is the normal game mode
	ModeStandard Mode = iota
	// ModeMaster covers the monsters exclusive to master mode
	ModeMaster
)

// Identifier selects a single entry either by compendium id or by name.
type Identifier struct {
	id     int
	name   string
	byName bool
}

// ByID builds an identifier for an entry's numeric compendium id.
func ByID(id int) Identifier {
	return Identifier{id: id}
}

// ByName builds an identifier for an entry's name, e.g. "silver moblin".
func ByName(name string) Identifier {
	return Identifier{name: name, byName: true}
}

// PathSegment renders the identifier the way the API expects it in a URL:
// ids as decimal, names with spaces replaced by underscores.
func (i Identifier) PathSegment() string {
	if i.byName {
		return strings.ReplaceAll(strings.TrimSpace(i.name), " ", "_")
	}
	return strconv.Itoa(i.id)
}

// String implements fmt.Stringer.
func (i Identifier) String() string {
	if i.byName {
		return i.name
	}
	return strconv.Itoa(i.id)
}

// EntryCore holds the fields shared by every compendium entry.
type EntryCore struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	CommonLocations []string `json:"common_locations"`
	Image           string   `json:"image"`
}

// Core returns the entry's common fields.
func (e EntryCore) Core() EntryCore {
	return e
}

// isZero reports whether the payload carried no entry at all. The API
// answers some misses with an empty data object rather than a 404.
func (e EntryCore) isZero() bool {
	return e.ID == 0 && e.Name == ""
}

// Entry is implemented by every compendium entry type. Concrete types are
// *MonsterEntry, *CreatureEntry, *MaterialEntry, *EquipmentEntry and
// *TreasureEntry; callers type-switch when they need category fields.
type Entry interface {
	Core() EntryCore
	Category() Category
}

// MonsterEntry is a single entry from the monsters category.
type MonsterEntry struct {
	EntryCore
	Drops []string `json:"drops"`
}

// Category returns CategoryMonsters.
func (MonsterEntry) Category() Category { return CategoryMonsters }

// CreatureEntry is a single entry from the creatures category.
type CreatureEntry struct {
	EntryCore
	Drops           []string `json:"drops"`
	HeartsRecovered float64  `json:"hearts_recovered"`
	CookingEffect   string   `json:"cooking_effect"`
}

// Category returns CategoryCreatures.
func (CreatureEntry) Category() Category { return CategoryCreatures }

// Edible reports whether the creature is a food item.
func (e CreatureEntry) Edible() bool {
	return e.HeartsRecovered > 0 || e.CookingEffect != ""
}

// MaterialEntry is a single entry from the materials category.
type MaterialEntry struct {
	EntryCore
	HeartsRecovered float64 `json:"hearts_recovered"`
}

// Category returns CategoryMaterials.
func (MaterialEntry) Category() Category { return CategoryMaterials }

// EquipmentEntry is a single entry from the equipment category.
type EquipmentEntry struct {
	EntryCore
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// Category returns CategoryEquipment.
func (EquipmentEntry) Category() Category { return CategoryEquipment }

// TreasureEntry is a single entry from the treasure category.
type TreasureEntry struct {
	EntryCore
	Drops []string `json:"drops"`
}

// Category returns CategoryTreasure.
func (TreasureEntry) Category() Category { return CategoryTreasure }

// CreatureEntries is the food / non-food split the API uses when returning
// creatures in bulk.
type CreatureEntries struct {
	Food    []CreatureEntry `json:"food"`
	NonFood []CreatureEntry `json:"non_food"`
}

// All returns every creature regardless of bucket.
func (ce CreatureEntries) All() []CreatureEntry {
	out := make([]CreatureEntry, 0, len(ce.Food)+len(ce.NonFood))
	out = append(out, ce.Food...)
	out = append(out, ce.NonFood...)
	return out
}

// Len returns the total number of creatures across both buckets.
func (ce CreatureEntries) Len() int {
	return len(ce.Food) + len(ce.NonFood)
}

// AllEntries bundles every standard-mode entry in the compendium, the shape
// the /all endpoint returns.
type AllEntries struct {
	Creatures CreatureEntries  `json:"creatures"`
	Equipment []EquipmentEntry `json:"equipment"`
	Materials []MaterialEntry  `json:"materials"`
	Monsters  []MonsterEntry   `json:"monsters"`
	Treasure  []TreasureEntry  `json:"treasure"`
}

// Count returns the total number of entries across all categories.
func (a *AllEntries) Count() int {
	return a.Creatures.Len() + len(a.Equipment) + len(a.Materials) + len(a.Monsters) + len(a.Treasure)
}

// Flatten returns every entry as the Entry interface, creatures first.
func (a *AllEntries) Flatten() []Entry {
	out := make([]Entry, 0, a.Count())
	for i := range a.Creatures.Food {
		out = append(out, &a.Creatures.Food[i])
	}
	for i := range a.Creatures.NonFood {
		out = append(out, &a.Creatures.NonFood[i])
	}
	for i := range a.Equipment {
		out = append(out, &a.Equipment[i])
	}
	for i := range a.Materials {
		out = append(out, &a.Materials[i])
	}
	for i := range a.Monsters {
		out = append(out, &a.Monsters[i])
	}
	for i := range a.Treasure {
		out = append(out, &a.Treasure[i])
	}
	return out
}

// CategoryEntries holds the result of a single-category fetch. Only the
// field matching Category is populated; creatures keep their food split.
type CategoryEntries struct {
	Category  Category
	Creatures *CreatureEntries
	Monsters  []MonsterEntry
	Materials []MaterialEntry
	Equipment []EquipmentEntry
	Treasure  []TreasureEntry
}

// Count returns the number of entries fetched.
func (ce *CategoryEntries) Count() int {
	switch ce.Category {
	case CategoryCreatures:
		if ce.Creatures == nil {
			return 0
		}
		return ce.Creatures.Len()
	case CategoryMonsters:
		return len(ce.Monsters)
	case CategoryMaterials:
		return len(ce.Materials)
	case CategoryEquipment:
		return len(ce.Equipment)
	case CategoryTreasure:
		return len(ce.Treasure)
	}
	return 0
}

// Flatten returns the fetched entries as the Entry interface.
func (ce *CategoryEntries) Flatten() []Entry {
	out := make([]Entry, 0, ce.Count())
	switch ce.Category {
	case CategoryCreatures:
		if ce.Creatures == nil {
			return out
		}
		for i := range ce.Creatures.Food {
			out = append(out, &ce.Creatures.Food[i])
		}
		for i := range ce.Creatures.NonFood {
			out = append(out, &ce.Creatures.NonFood[i])
		}
	case CategoryMonsters:
		for i := range ce.Monsters {
			out = append(out, &ce.Monsters[i])
		}
	case CategoryMaterials:
		for i := range ce.Materials {
			out = append(out, &ce.Materials[i])
		}
	case CategoryEquipment:
		for i := range ce.Equipment {
			out = append(out, &ce.Equipment[i])
		}
	case CategoryTreasure:
		for i := range ce.Treasure {
			out = append(out, &ce.Treasure[i])
		}
	}
	return out
}
