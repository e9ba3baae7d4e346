// Package hyrule provides a client for the Hyrule Compendium API.
//
// The Hyrule Compendium is a public REST API serving data on every creature,
// monster, material, piece of equipment and treasure in Breath of the Wild.
// This package implements a typed, context-aware Go client for it.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the API client, one synchronous request per call
//   - Types: entry models mirroring the API's JSON schema
//   - API: interface definition for testability
//   - Errors: structured error types with classification helpers
//
// # Usage
//
// Create a client against the public v2 API and look up an entry:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := hyrule.NewClient("", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	entry, err := client.Entry(ctx, hyrule.ByName("silver moblin"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	switch e := entry.(type) {
//	case *hyrule.MonsterEntry:
//		fmt.Println(e.Name, e.Drops)
//	}
//
// Typed lookups skip the type switch when the category is known up front:
//
//	monster, err := client.Monster(ctx, hyrule.ByID(112))
//
// Bulk fetches cover a whole category or the entire compendium:
//
//	monsters, err := client.Category(ctx, hyrule.CategoryMonsters)
//	all, err := client.AllEntries(ctx)
//
// # Error Handling
//
// Transport and decode failures are wrapped and passed through. Non-2xx
// responses surface as *APIError with status classification helpers:
//
//	var apiErr *hyrule.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// entry does not exist
//	}
//
// Lookups that hit the API but find nothing return ErrNoData.
package hyrule
