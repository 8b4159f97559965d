// Package registry provides a global registry for campaign factories.
// Campaigns register themselves in init() functions, so the CLI can list
// and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tile-platformer/internal/levels"
)

// Campaign is an ordered list of level plans played one after another.
type Campaign struct {
	ID    string
	Title string
	Plans []levels.Plan
}

// CampaignInfo contains metadata about a registered campaign.
type CampaignInfo struct {
	ID    string
	Title string
}

// Factory loads a campaign. Loading is deferred until the campaign is used.
type Factory func() (Campaign, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a campaign factory to the registry.
// Typically called from a campaign package's init() function.
// Panics if a campaign with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: campaign %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered campaigns, sorted by ID.
func List() []CampaignInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CampaignInfo, 0, len(factories))
	for id := range factories {
		result = append(result, CampaignInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create loads a campaign by its ID.
// Returns an error if the ID is not registered or the campaign fails to load.
func Create(id string) (Campaign, error) {
	mu.RLock()
	f, ok := factories[id]
	title := titles[id]
	mu.RUnlock()

	if !ok {
		return Campaign{}, fmt.Errorf("registry: unknown campaign %q", id)
	}

	c, err := f()
	if err != nil {
		return Campaign{}, fmt.Errorf("registry: loading campaign %q: %w", id, err)
	}
	if c.ID == "" {
		c.ID = id
	}
	if c.Title == "" {
		c.Title = title
	}
	return c, nil
}

// Exists checks if a campaign with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
