package hyrule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierPathSegment(t *testing.T) {
	tests := []struct {
		name     string
		id       Identifier
		expected string
	}{
		{"numeric id", ByID(1), "1"},
		{"large id", ByID(112), "112"},
		{"single word name", ByName("horse"), "horse"},
		{"spaces become underscores", ByName("silver moblin"), "silver_moblin"},
		{"surrounding whitespace trimmed", ByName("  white-maned lynel "), "white-maned_lynel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.id.PathSegment())
		})
	}
}

func TestEntryPath(t *testing.T) {
	assert.Equal(t, "entry/silver_moblin", entryPath(ByName("silver moblin"), ModeStandard))
	assert.Equal(t, "master_mode/entry/golden_lynel", entryPath(ByName("golden lynel"), ModeMaster))
	assert.Equal(t, "entry/112", entryPath(ByID(112), ModeStandard))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{"monsters", CategoryMonsters, false},
		{"creatures", CategoryCreatures, false},
		{"materials", CategoryMaterials, false},
		{"equipment", CategoryEquipment, false},
		{"treasure", CategoryTreasure, false},
		{"  Monsters ", CategoryMonsters, false},
		{"plants", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cat, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cat)
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 5)
	for _, cat := range cats {
		parsed, err := ParseCategory(cat.String())
		require.NoError(t, err)
		assert.Equal(t, cat, parsed)
	}
}

func TestCreatureEdible(t *testing.T) {
	assert.True(t, CreatureEntry{HeartsRecovered: 1}.Edible())
	assert.True(t, CreatureEntry{CookingEffect: "heat resistance"}.Edible())
	assert.False(t, CreatureEntry{}.Edible())
}

func TestCreatureEntriesAll(t *testing.T) {
	ce := CreatureEntries{
		Food:    []CreatureEntry{{EntryCore: EntryCore{ID: 1, Name: "hyrule bass"}}},
		NonFood: []CreatureEntry{{EntryCore: EntryCore{ID: 2, Name: "horse"}}},
	}

	all := ce.All()
	require.Len(t, all, 2)
	assert.Equal(t, "hyrule bass", all[0].Name)
	assert.Equal(t, "horse", all[1].Name)
	assert.Equal(t, 2, ce.Len())
}

func TestCategoryEntriesFlatten(t *testing.T) {
	result := &CategoryEntries{
		Category: CategoryEquipment,
		Equipment: []EquipmentEntry{
			{EntryCore: EntryCore{ID: 201, Name: "master sword"}, Attack: 30},
		},
	}

	entries := result.Flatten()
	require.Len(t, entries, 1)
	assert.Equal(t, CategoryEquipment, entries[0].Category())
	assert.Equal(t, "master sword", entries[0].Core().Name)
}

func TestEntryInterface(t *testing.T) {
	// Every entry type satisfies Entry with its category tag.
	entries := []Entry{
		&MonsterEntry{},
		&CreatureEntry{},
		&MaterialEntry{},
		&EquipmentEntry{},
		&TreasureEntry{},
	}
	expected := []Category{
		CategoryMonsters,
		CategoryCreatures,
		CategoryMaterials,
		CategoryEquipment,
		CategoryTreasure,
	}
	for i, entry := range entries {
		assert.Equal(t, expected[i], entry.Category())
	}
}
