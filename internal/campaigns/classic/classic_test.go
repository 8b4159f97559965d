package classic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-platformer/internal/core"
	"github.com/vovakirdan/tile-platformer/internal/games/platformer"
	"github.com/vovakirdan/tile-platformer/internal/levels"
	"github.com/vovakirdan/tile-platformer/internal/registry"
)

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))

	c, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, Title, c.Title)

	ids := make([]string, len(c.Plans))
	for i, p := range c.Plans {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"01-intro", "02-lava-pit", "03-fire-rain"}, ids)
}

func TestPlansValid(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, p := range c.Plans {
		assert.NoError(t, p.Validate(platformer.DefaultSymbols()), "plan %s", p.ID)
		assert.NotEmpty(t, p.Metadata["hint"], "plan %s", p.ID)
	}
}

func TestCampaignCompletes(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cfg := platformer.CampaignConfig{
		Runtime: core.RuntimeConfig{TimeStep: 0.05, MaxStep: 0.05, MaxTicks: 600, Seed: 7},
		Symbols: platformer.DefaultSymbols(),
	}
	res, err := platformer.RunCampaign(context.Background(), levels.Stages(c.Plans), cfg, nil)
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.Equal(t, platformer.DefaultLives, res.LivesLeft)
	require.Len(t, res.Results, len(c.Plans))
	for _, r := range res.Results {
		assert.Equal(t, platformer.OutcomeWon, r.Outcome, "level %s", r.LevelID)
		assert.Zero(t, r.CoinsLeft)
	}
}
