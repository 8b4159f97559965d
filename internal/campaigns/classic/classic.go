// Package classic registers the built-in campaign shipped with the binary.
package classic

import (
	"embed"
	"fmt"

	"github.com/vovakirdan/tile-platformer/internal/levels"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

const (
	ID    = "classic"
	Title = "Classic"
)

//go:embed plans/*
var planFS embed.FS

func init() {
	registry.Register(ID, Title, Load)
}

// Load reads the embedded plans in file order.
func Load() (registry.Campaign, error) {
	plans, err := levels.NewLoader(planFS, "plans").LoadAll()
	if err != nil {
		return registry.Campaign{}, err
	}
	if len(plans) == 0 {
		return registry.Campaign{}, fmt.Errorf("classic: no embedded plans")
	}
	return registry.Campaign{ID: ID, Title: Title, Plans: plans}, nil
}
