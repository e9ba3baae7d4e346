package hyrule

import (
	"context"
)

// API defines the operations a compendium client provides.
type API interface {
	// TestConnection verifies the client can reach the compendium API
	TestConnection(ctx context.Context) error

	// Entry fetches a single entry of any category
	Entry(ctx context.Context, id Identifier) (Entry, error)

	// Monster fetches a monster entry
	Monster(ctx context.Context, id Identifier) (*MonsterEntry, error)

	// MasterModeMonster fetches a monster exclusive to master mode
	MasterModeMonster(ctx context.Context, id Identifier) (*MonsterEntry, error)

	// Creature fetches a creature entry
	Creature(ctx context.Context, id Identifier) (*CreatureEntry, error)

	// Material fetches a material entry
	Material(ctx context.Context, id Identifier) (*MaterialEntry, error)

	// Equipment fetches an equipment entry
	Equipment(ctx context.Context, id Identifier) (*EquipmentEntry, error)

	// Treasure fetches a treasure entry
	Treasure(ctx context.Context, id Identifier) (*TreasureEntry, error)

	// Category fetches every entry of a single category
	Category(ctx context.Context, cat Category) (*CategoryEntries, error)

	// AllEntries fetches every standard-mode entry in one request
	AllEntries(ctx context.Context) (*AllEntries, error)

	// AllMasterModeEntries fetches every master-mode monster
	AllMasterModeEntries(ctx context.Context) ([]MonsterEntry, error)

	// DownloadImage fetches the image an entry links to
	DownloadImage(ctx context.Context, entry Entry) ([]byte, error)
}
