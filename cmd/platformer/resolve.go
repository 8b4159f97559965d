package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tile-platformer/internal/levels"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

// resolveCampaign loads a registered campaign by ID, or builds one from a
// plan directory or a single plan file.
func resolveCampaign(arg string) (registry.Campaign, error) {
	if registry.Exists(arg) {
		return registry.Create(arg)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return registry.Campaign{}, fmt.Errorf("unknown campaign %q (run 'platformer list' to see campaigns)", arg)
	}

	var plans []levels.Plan
	if info.IsDir() {
		plans, err = levels.NewDirLoader(arg).LoadAll()
	} else {
		plans, err = levels.NewDirLoader(filepath.Dir(arg)).LoadFile(filepath.Base(arg))
	}
	if err != nil {
		return registry.Campaign{}, err
	}
	if len(plans) == 0 {
		return registry.Campaign{}, fmt.Errorf("no plan files found in %s", arg)
	}

	id := filepath.Base(filepath.Clean(arg))
	return registry.Campaign{ID: id, Title: id, Plans: plans}, nil
}

// selectPlan narrows plans to the one with the given ID and returns its
// index in the campaign.
func selectPlan(plans []levels.Plan, id string) ([]levels.Plan, int, error) {
	for i, p := range plans {
		if p.ID == id {
			return plans[i : i+1], i, nil
		}
	}
	return nil, 0, fmt.Errorf("level %q not found", id)
}
