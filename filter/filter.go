package filter

import (
	"strings"

	"github.com/purah/compendium/hyrule"
)

// EntryInfo is the flattened view of a compendium entry that search
// expressions evaluate against. Fields that don't apply to an entry's
// category stay at their zero value.
type EntryInfo struct {
	ID              int
	Name            string
	Category        string
	Description     string
	Image           string
	CommonLocations []string
	Drops           []string
	HeartsRecovered float64
	CookingEffect   string
	Attack          int
	Defense         int
	Food            bool
	MasterMode      bool
}

// FromEntry flattens a single entry into an EntryInfo.
func FromEntry(entry hyrule.Entry) EntryInfo {
	core := entry.Core()
	info := EntryInfo{
		ID:              core.ID,
		Name:            core.Name,
		Category:        entry.Category().String(),
		Description:     core.Description,
		Image:           core.Image,
		CommonLocations: core.CommonLocations,
	}

	switch e := entry.(type) {
	case *hyrule.MonsterEntry:
		info.Drops = e.Drops
	case *hyrule.CreatureEntry:
		info.Drops = e.Drops
		info.HeartsRecovered = e.HeartsRecovered
		info.CookingEffect = e.CookingEffect
		info.Food = e.Edible()
	case *hyrule.MaterialEntry:
		info.HeartsRecovered = e.HeartsRecovered
	case *hyrule.EquipmentEntry:
		info.Attack = e.Attack
		info.Defense = e.Defense
	case *hyrule.TreasureEntry:
		info.Drops = e.Drops
	}

	return info
}

// FromAllEntries flattens a full compendium snapshot. Creatures keep the
// food flag from the bucket the API put them in.
func FromAllEntries(all *hyrule.AllEntries) []EntryInfo {
	infos := make([]EntryInfo, 0, all.Count())

	for i := range all.Creatures.Food {
		info := FromEntry(&all.Creatures.Food[i])
		info.Food = true
		infos = append(infos, info)
	}
	for i := range all.Creatures.NonFood {
		info := FromEntry(&all.Creatures.NonFood[i])
		info.Food = false
		infos = append(infos, info)
	}
	for i := range all.Equipment {
		infos = append(infos, FromEntry(&all.Equipment[i]))
	}
	for i := range all.Materials {
		infos = append(infos, FromEntry(&all.Materials[i]))
	}
	for i := range all.Monsters {
		infos = append(infos, FromEntry(&all.Monsters[i]))
	}
	for i := range all.Treasure {
		infos = append(infos, FromEntry(&all.Treasure[i]))
	}

	return infos
}

// FromMasterModeEntries flattens master-mode monsters, tagging them so
// expressions can tell the modes apart.
func FromMasterModeEntries(monsters []hyrule.MonsterEntry) []EntryInfo {
	infos := make([]EntryInfo, 0, len(monsters))
	for i := range monsters {
		info := FromEntry(&monsters[i])
		info.MasterMode = true
		infos = append(infos, info)
	}
	return infos
}

// ParseAndCreateFilter parses a filter expression and returns a filter
// function. An empty expression matches everything.
func ParseAndCreateFilter(expression string) (func(EntryInfo) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(EntryInfo) bool { return true }, nil
	}
	return CreateExprFilter(expression)
}
